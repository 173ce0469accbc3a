package bib

import (
	"reflect"
	"testing"
)

func TestParseAuthors_LastCommaFirst(t *testing.T) {
	got := ParseAuthors("Smith, John and Jones, Barbara")
	want := []Name{
		{First: "John", Last: "Smith"},
		{First: "Barbara", Last: "Jones"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAuthors = %v, want %v", got, want)
	}
}

func TestParseAuthors_FirstLast(t *testing.T) {
	got := ParseAuthors("John Smith")
	want := []Name{{First: "John", Last: "Smith"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAuthors = %v, want %v", got, want)
	}
}

func TestParseAuthors_ParticleAbsorbedIntoLast(t *testing.T) {
	got := ParseAuthors("René van den Berg")
	want := []Name{{First: "René", Last: "van den Berg"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAuthors = %v, want %v", got, want)
	}
}

func TestParseAuthors_SingleToken(t *testing.T) {
	got := ParseAuthors("Anonymous")
	want := []Name{{Last: "Anonymous"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAuthors = %v, want %v", got, want)
	}
}

func TestParseAuthors_Empty(t *testing.T) {
	if got := ParseAuthors(""); got != nil {
		t.Errorf("ParseAuthors(\"\") = %v, want nil", got)
	}
}
