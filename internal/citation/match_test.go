package citation

import "testing"

func TestUndiacritic(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Krishnamūrti", "Krishnamurti"},
		{"René  van   den Berg", "Rene van den Berg"},
		{"O'Grady", "OGrady"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Undiacritic(c.in); got != c.want {
			t.Errorf("Undiacritic(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAuthorMatches_Conjunctive(t *testing.T) {
	if !AuthorMatches("Smith & Jones", "Smith, A. and Jones, B.", nil) {
		t.Error("both surnames present, want match")
	}
	if AuthorMatches("Smith & Jones", "Smith, A.", nil) {
		t.Error("Jones is not covered, want no match")
	}
}

func TestAuthorMatches_SubsetOfEntryAuthors(t *testing.T) {
	if !AuthorMatches("Smith", "Smith, A. and Jones, B.", nil) {
		t.Error("citing only the first author should match")
	}
}

func TestAuthorMatches_SeparatorVariants(t *testing.T) {
	field := "Smith, A. and Jones, B."
	for _, extracted := range []string{"Smith & Jones", "Smith/Jones", "Smith and Jones"} {
		if !AuthorMatches(extracted, field, nil) {
			t.Errorf("%q should match %q", extracted, field)
		}
	}
}

func TestAuthorMatches_DiacriticsFolded(t *testing.T) {
	if !AuthorMatches("Krishnamūrti", "Krishnamurti, Bh.", nil) {
		t.Error("diacritics should not block matching")
	}
	if !AuthorMatches("Krishnamurti", "Krishnamūrti, Bh.", nil) {
		t.Error("folding should apply to the entry side too")
	}
}

func TestAuthorMatches_ParticlesSkipped(t *testing.T) {
	if !AuthorMatches("Van den Berg", "Berg, René van den", nil) {
		t.Error("particles should be skipped when picking the surname token")
	}
}

func TestAuthorMatches_ExtraSurnames(t *testing.T) {
	if AuthorMatches("Smith & Jones", "Smith, A.", nil) {
		t.Error("without extras Jones cannot match")
	}
	if !AuthorMatches("Smith & Jones", "Smith, A.", []string{"jones"}) {
		t.Error("extra surnames should extend the candidate set")
	}
}

func TestAuthorMatches_NoCandidates(t *testing.T) {
	if AuthorMatches("Smith", "", nil) {
		t.Error("empty author field and no extras can never match")
	}
}

func TestAuthorMatches_LowercaseClauseHasNoSurname(t *testing.T) {
	if AuthorMatches("field notes", "Field, C.", nil) {
		t.Error("a clause without a capitalized token has no surname to match")
	}
}
