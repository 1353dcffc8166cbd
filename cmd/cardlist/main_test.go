package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectIndexArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"cardlist"},
			want: []string{"cardlist"},
		},
		{
			name: "direct index first token",
			in:   []string{"cardlist", "3"},
			want: []string{"cardlist", "show", "3"},
		},
		{
			name: "direct index after value flag",
			in:   []string{"cardlist", "--dir", "./tmp-cards", "0"},
			want: []string{"cardlist", "--dir", "./tmp-cards", "show", "0"},
		},
		{
			name: "numeric flag value is not an index",
			in:   []string{"cardlist", "--dir", "7"},
			want: []string{"cardlist", "--dir", "7"},
		},
		{
			name: "direct index after equals flag",
			in:   []string{"cardlist", "--dir=./tmp-cards", "1"},
			want: []string{"cardlist", "--dir=./tmp-cards", "show", "1"},
		},
		{
			name: "direct index after bool flag",
			in:   []string{"cardlist", "--pretty", "2"},
			want: []string{"cardlist", "--pretty", "show", "2"},
		},
		{
			name: "direct index after double dash",
			in:   []string{"cardlist", "--dir", "./tmp-cards", "--", "4"},
			want: []string{"cardlist", "--dir", "./tmp-cards", "--", "show", "4"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"cardlist", "edit", "0", "x"},
			want: []string{"cardlist", "edit", "0", "x"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"cardlist", "wat"},
			want: []string{"cardlist", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectIndexArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectIndexArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
