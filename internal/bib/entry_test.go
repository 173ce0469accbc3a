package bib

import (
	"reflect"
	"testing"
)

func TestTypes_AnnotationsStripped(t *testing.T) {
	e := &Entry{HHType: "grammar (computerized assignment from 330 pages)"}
	got := e.Types()
	want := []string{"grammar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
}

func TestTypes_MultipleTags(t *testing.T) {
	e := &Entry{HHType: "wordlist;socling"}
	got := e.Types()
	want := []string{"wordlist", "socling"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
}

func TestTypes_EmptyFieldIsUnknown(t *testing.T) {
	e := &Entry{}
	got := e.Types()
	if !reflect.DeepEqual(got, []string{"unknown"}) {
		t.Errorf("Types() = %v, want [unknown]", got)
	}
}

func TestLanguageCodes_Bracketed(t *testing.T) {
	got := LanguageCodes("Telugu [tel], English [eng]")
	want := []string{"tel", "eng"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LanguageCodes = %v, want %v", got, want)
	}
}

func TestLanguageCodes_BareISO(t *testing.T) {
	got := LanguageCodes("eng")
	if !reflect.DeepEqual(got, []string{"eng"}) {
		t.Errorf("LanguageCodes = %v, want [eng]", got)
	}
}

func TestLanguageCodes_Glottocode(t *testing.T) {
	got := LanguageCodes("Telugu [telu1262]")
	if !reflect.DeepEqual(got, []string{"telu1262"}) {
		t.Errorf("LanguageCodes = %v, want [telu1262]", got)
	}
}

func TestLanguageCodes_NoCode(t *testing.T) {
	if got := LanguageCodes("Some Language Name"); got != nil {
		t.Errorf("LanguageCodes = %v, want nil", got)
	}
}

func TestKeyAuthors_HyphenatedKey(t *testing.T) {
	got := KeyAuthors("gwynn-krishnamurti1985")
	want := []string{"gwynn", "krishnamurti"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeyAuthors = %v, want %v", got, want)
	}
}

func TestKeyAuthors_SingleAuthor(t *testing.T) {
	got := KeyAuthors("smith90")
	if !reflect.DeepEqual(got, []string{"smith"}) {
		t.Errorf("KeyAuthors = %v, want [smith]", got)
	}
}

func TestKeyAuthors_PrefixedKeyDropsShortSegments(t *testing.T) {
	got := KeyAuthors("s:Starostin:Chukchi")
	want := []string{"starostin", "chukchi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeyAuthors = %v, want %v", got, want)
	}
}

func TestBuildIndex(t *testing.T) {
	entries := map[string]*Entry{
		"b": {Key: "b", Lgcode: "Telugu [tel]"},
		"a": {Key: "a", Lgcode: "Telugu [tel], English [eng]"},
	}
	index := BuildIndex(entries)

	if !reflect.DeepEqual(index["tel"], []string{"a", "b"}) {
		t.Errorf("index[tel] = %v, want [a b]", index["tel"])
	}
	if !reflect.DeepEqual(index["eng"], []string{"a"}) {
		t.Errorf("index[eng] = %v, want [a]", index["eng"])
	}
}

func TestTypeRank_Ordering(t *testing.T) {
	if TypeRank("grammar") <= TypeRank("dictionary") {
		t.Error("grammar should outrank dictionary")
	}
	if TypeRank("dictionary") <= TypeRank("wordlist") {
		t.Error("dictionary should outrank wordlist")
	}
	if TypeRank("nonsense") != TypeRank("unknown") {
		t.Error("unlisted tags should rank like unknown")
	}
}

func TestMaxTypeRank_PicksBestTag(t *testing.T) {
	e := &Entry{HHType: "wordlist;grammar"}
	if got := MaxTypeRank(e); got != TypeRank("grammar") {
		t.Errorf("MaxTypeRank = %d, want rank of grammar (%d)", got, TypeRank("grammar"))
	}
}

func TestIsEnglish(t *testing.T) {
	if !IsEnglish(&Entry{InLg: "English [eng]"}) {
		t.Error("English [eng] should be English")
	}
	if IsEnglish(&Entry{InLg: "German [deu]"}) {
		t.Error("German [deu] should not be English")
	}
	if IsEnglish(&Entry{InLg: "English [eng], German [deu]"}) {
		t.Error("multiple languages should not count as exactly English")
	}
}
