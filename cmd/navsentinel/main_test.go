package main

import (
	"reflect"
	"testing"
)

func TestWithDefaultCommand(t *testing.T) {
	register()
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, []string{"watch"}},
		{[]string{"10000", "120"}, []string{"watch", "10000", "120"}},
		{[]string{"-stake", "5"}, []string{"watch", "-stake", "5"}},
		{[]string{"last"}, []string{"last"}},
		{[]string{"once", "-stake", "5"}, []string{"once", "-stake", "5"}},
		{[]string{"help"}, []string{"help"}},
	}
	for _, tt := range tests {
		if got := withDefaultCommand(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("withDefaultCommand(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUseColor(t *testing.T) {
	if !useColor("always", nil) {
		t.Error("always must enable color")
	}
	if useColor("never", nil) {
		t.Error("never must disable color")
	}
}
