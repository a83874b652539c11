package ml_parser

import "testing"

func TestSplitNsName(t *testing.T) {
	tests := []struct {
		name       string
		wantPrefix string
		wantLocal  string
	}{
		{"div", "", "div"},
		{":svg:rect", "svg", "rect"},
		{":math:mfrac", "math", "mfrac"},
		{"", "", ""},
	}
	for _, tt := range tests {
		prefix, local := SplitNsName(tt.name, false)
		if prefix != tt.wantPrefix || local != tt.wantLocal {
			t.Errorf("SplitNsName(%q) = (%q, %q), want (%q, %q)", tt.name, prefix, local, tt.wantPrefix, tt.wantLocal)
		}
	}
}

func TestSplitNsNameMalformed(t *testing.T) {
	prefix, local := SplitNsName(":svg", false)
	if prefix != "" || local != ":svg" {
		t.Errorf("SplitNsName(\":svg\", false) = (%q, %q), want (\"\", \":svg\")", prefix, local)
	}

	defer func() {
		if recover() == nil {
			t.Error("SplitNsName(\":svg\", true) should panic")
		}
	}()
	SplitNsName(":svg", true)
}

func TestMergeNsAndNameRoundTrip(t *testing.T) {
	for _, name := range []string{"div", ":svg:rect", ":math:mfrac"} {
		prefix, local := SplitNsName(name, false)
		if got := MergeNsAndName(prefix, local); got != name {
			t.Errorf("MergeNsAndName(SplitNsName(%q)) = %q", name, got)
		}
	}
}

func TestTagPredicates(t *testing.T) {
	if !IsNgTemplate("ng-template") || !IsNgTemplate(":svg:ng-template") {
		t.Error("IsNgTemplate should match with and without a namespace")
	}
	if IsNgTemplate("div") {
		t.Error("IsNgTemplate should not match div")
	}
	if !IsNgContainer("ng-container") || IsNgContainer("ng-content") {
		t.Error("IsNgContainer mismatch")
	}
	if !IsNgContent("ng-content") || IsNgContent("ng-container") {
		t.Error("IsNgContent mismatch")
	}
}

func TestGetNsPrefix(t *testing.T) {
	if got := GetNsPrefix(nil); got != nil {
		t.Errorf("GetNsPrefix(nil) = %v, want nil", got)
	}
	plain := "div"
	if got := GetNsPrefix(&plain); got != nil {
		t.Errorf("GetNsPrefix(div) = %v, want nil", got)
	}
	qualified := ":svg:rect"
	if got := GetNsPrefix(&qualified); got == nil || *got != "svg" {
		t.Errorf("GetNsPrefix(:svg:rect) = %v, want svg", got)
	}
}
