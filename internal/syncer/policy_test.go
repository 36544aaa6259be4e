package syncer

import (
	"errors"
	"testing"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Policy
		wantErr bool
	}{
		{name: "overwrite", in: "overwrite", want: PolicyOverwrite},
		{name: "append", in: "append", want: PolicyAppend},
		{name: "prepend", in: "prepend-source", want: PolicyPrependSource},
		{name: "legacy spelling", in: "prepend_source_statement", want: PolicyPrependSource},
		{name: "mixed case", in: "Overwrite", want: PolicyOverwrite},
		{name: "padded", in: "  append \n", want: PolicyAppend},
		{name: "unknown", in: "mirror", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPolicy) {
					t.Fatalf("ParsePolicy(%q) error = %v, want ErrUnknownPolicy", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePolicy(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
