package router

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		fragment   string
		wantName   string
		wantParams []string
	}{
		{"", "home", []string{}},
		{"#", "home", []string{}},
		{"completed", "completed", []string{}},
		{"#completed", "completed", []string{}},
		{"completed/x/y", "completed", []string{"x", "y"}},
		{"#completed/x/y", "completed", []string{"x", "y"}},
		{"#/x", "home", []string{"x"}},
		{"#a//b", "a", []string{"", "b"}},
		{"#a/", "a", []string{""}},
		{"##a", "#a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got := Parse(tt.fragment)
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if !reflect.DeepEqual(got.Params, tt.wantParams) {
				t.Errorf("Params = %#v, want %#v", got.Params, tt.wantParams)
			}
		})
	}
}

func TestRouteHelpers(t *testing.T) {
	r := Route{Name: "completed", Params: []string{"x", "y"}}

	if got := r.Param(1); got != "y" {
		t.Errorf("Param(1) = %q, want y", got)
	}
	if got := r.Param(2); got != "" {
		t.Errorf("Param(2) = %q, want empty", got)
	}
	if got := r.Param(-1); got != "" {
		t.Errorf("Param(-1) = %q, want empty", got)
	}
	if got := r.Fragment(); got != "#completed/x/y" {
		t.Errorf("Fragment() = %q", got)
	}
	if got := r.String(); got != "#completed/x/y" {
		t.Errorf("String() = %q", got)
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	tests := []Route{
		{Name: "home", Params: []string{}},
		{Name: "completed", Params: []string{"x", "y"}},
		{Name: "item", Params: []string{"42"}},
	}
	for _, want := range tests {
		got := Parse(want.Fragment())
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Parse(%q) = %+v, want %+v", want.Fragment(), got, want)
		}
	}
}
