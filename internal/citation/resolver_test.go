package citation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/glottolab/gramsheet/internal/bib"
)

func testResolver() *Resolver {
	entries := map[string]*bib.Entry{
		"smith90": {
			Key: "smith90", Author: "Smith, John", Year: "1990",
			Title: "A Grammar of Foo", HHType: "grammar", InLg: "English [eng]",
			Lgcode: "Foo [abcd1234]",
		},
		"jones2001": {
			Key: "jones2001", Author: "Jones, Barbara", Year: "2001",
			Title: "Foo Texts", HHType: "text", InLg: "English [eng]",
			Lgcode: "Foo [abcd1234]",
		},
	}
	return &Resolver{
		Entries: entries,
		Index: map[string][]string{
			"abcd1234": {"smith90", "jones2001"},
			"fra":      nil,
		},
	}
}

// outcomeClasses counts how many of the four outcome kinds a result carries.
func outcomeClasses(res *Result) int {
	n := 0
	if len(res.References) > 0 {
		n++
	}
	if res.Comment != "" {
		n++
	}
	if len(res.Unresolved) > 0 {
		n++
	}
	if res.PageOnly {
		n++
	}
	return n
}

func TestResolve_InlineCitation(t *testing.T) {
	r := testResolver()
	res, err := r.Resolve("Smith 1990: 45-50", "abcd1234")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []Reference{{Key: "smith90", Pages: []string{"45-50"}}}
	if !reflect.DeepEqual(res.References, want) {
		t.Errorf("References = %+v, want %+v", res.References, want)
	}
	if outcomeClasses(res) != 1 {
		t.Errorf("result carries %d outcome classes, want exactly 1: %+v", outcomeClasses(res), res)
	}
}

func TestResolve_MultipleFragmentsAggregated(t *testing.T) {
	r := testResolver()
	res, err := r.Resolve("Smith 1990: 5; Jones 2001: 7; Smith 1990: 5", "abcd1234")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []Reference{
		{Key: "jones2001", Pages: []string{"7"}},
		{Key: "smith90", Pages: []string{"5"}},
	}
	if !reflect.DeepEqual(res.References, want) {
		t.Errorf("References = %+v, want deduplicated sorted %+v", res.References, want)
	}
}

func TestResolve_SameKeyDifferentPages(t *testing.T) {
	r := testResolver()
	res, err := r.Resolve("Smith 1990: 5; Smith 1990: 7", "abcd1234")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []Reference{{Key: "smith90", Pages: []string{"5", "7"}}}
	if !reflect.DeepEqual(res.References, want) {
		t.Errorf("References = %+v, want %+v", res.References, want)
	}
}

func TestResolve_UnavailableSourceUnresolved(t *testing.T) {
	r := testResolver()
	res, err := r.Resolve("Jones, field notes 2005", "fra")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []Unresolved{{Author: "Jones", Year: "", Language: "fra"}}
	if !reflect.DeepEqual(res.Unresolved, want) {
		t.Errorf("Unresolved = %+v, want %+v", res.Unresolved, want)
	}
	if outcomeClasses(res) != 1 {
		t.Errorf("result carries %d outcome classes, want exactly 1: %+v", outcomeClasses(res), res)
	}
}

func TestResolve_FreeTextBecomesComment(t *testing.T) {
	r := testResolver()
	res, err := r.Resolve("own knowledge of the variety", "fra")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Comment != "own knowledge of the variety" {
		t.Errorf("Comment = %q, want the source text", res.Comment)
	}
	if outcomeClasses(res) != 1 {
		t.Errorf("result carries %d outcome classes, want exactly 1: %+v", outcomeClasses(res), res)
	}
}

func TestResolve_UnmatchedCitationBecomesComment(t *testing.T) {
	// A well-formed citation that matches nothing in the pool carries no
	// unavailability marker, so it is kept as free text.
	r := testResolver()
	res, err := r.Resolve("Smith 1990: 45-50", "fra")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Comment != "Smith 1990: 45-50" {
		t.Errorf("Comment = %q, want the source text", res.Comment)
	}
	if len(res.Unresolved) != 0 {
		t.Errorf("Unresolved = %+v, want none", res.Unresolved)
	}
}

func TestResolve_PageOnlySource(t *testing.T) {
	r := testResolver()
	var tags, messages []string
	r.Diagnostic = func(tag, message string) {
		tags = append(tags, tag)
		messages = append(messages, message)
	}

	res, err := r.Resolve("22-25; 31 et seq.", "abcd1234")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !res.PageOnly {
		t.Fatalf("PageOnly = false, want true: %+v", res)
	}
	if outcomeClasses(res) != 1 {
		t.Errorf("result carries %d outcome classes, want exactly 1: %+v", outcomeClasses(res), res)
	}
	if !reflect.DeepEqual(tags, []string{"pageonly"}) {
		t.Errorf("diagnostic tags = %v, want [pageonly]", tags)
	}
	if len(messages) != 1 || messages[0] != "[abcd1234] default source: 22-25; 31 et seq." {
		t.Errorf("diagnostic message = %v", messages)
	}
}

func TestResolve_URLUnresolvedRaw(t *testing.T) {
	r := testResolver()
	res, err := r.Resolve("http://example.com/foo-grammar.pdf", "fra")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []Unresolved{{Raw: "http://example.com/foo-grammar.pdf", Language: "fra"}}
	if !reflect.DeepEqual(res.Unresolved, want) {
		t.Errorf("Unresolved = %+v, want %+v", res.Unresolved, want)
	}
}

func TestResolve_EmptySourceUnresolved(t *testing.T) {
	r := testResolver()
	res, err := r.Resolve("", "fra")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Unresolved) != 1 || res.Unresolved[0].Raw != "" || res.Unresolved[0].Language != "fra" {
		t.Errorf("Unresolved = %+v, want one raw record for fra", res.Unresolved)
	}
}

func TestResolve_EmptyLanguageRejected(t *testing.T) {
	r := testResolver()
	if _, err := r.Resolve("Smith 1990", ""); err == nil {
		t.Fatal("want error for empty language code")
	}
}

func TestResolve_MissingLanguageIsLookupError(t *testing.T) {
	r := testResolver()
	_, err := r.Resolve("Smith 1990", "zzzz9999")
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LookupError", err)
	}
	if le.Language != "zzzz9999" {
		t.Errorf("LookupError.Language = %q, want zzzz9999", le.Language)
	}
}

func TestResolve_TitleHintDisambiguates(t *testing.T) {
	r := testResolver()
	r.Entries["smith90texts"] = &bib.Entry{
		Key: "smith90texts", Author: "Smith, John", Year: "1990",
		Title: "Foo Texts with Translations", HHType: "grammar", InLg: "English [eng]",
	}
	r.Index["abcd1234"] = append(r.Index["abcd1234"], "smith90texts")

	res, err := r.Resolve("Smith_texts 1990: 3", "abcd1234")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []Reference{{Key: "smith90texts", Pages: []string{"3"}}}
	if !reflect.DeepEqual(res.References, want) {
		t.Errorf("References = %+v, want %+v", res.References, want)
	}
}
