package tables

import (
	"reflect"
	"testing"
)

func TestHasHeaders(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want bool
	}{
		{
			name: "labels over values",
			rows: [][]string{{"Name", "Age"}, {"Alice", "30"}},
			want: true,
		},
		{
			name: "all numeric",
			rows: [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
			want: false,
		},
		{
			name: "single row",
			rows: [][]string{{"Name", "Age"}},
			want: false,
		},
		{
			name: "empty",
			rows: nil,
			want: false,
		},
		{
			name: "mixed first row below half",
			rows: [][]string{{"1", "2", "3", "Total"}, {"4", "5", "6", "7"}},
			want: false,
		},
		{
			name: "text header over text data",
			rows: [][]string{{"City", "Country"}, {"Paris", "France"}},
			want: true,
		},
		{
			name: "blank cells ignored",
			rows: [][]string{{"", "", ""}, {"1", "2", "3"}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasHeaders(tt.rows); got != tt.want {
				t.Errorf("HasHeaders(%v) = %v, want %v", tt.rows, got, tt.want)
			}
		})
	}
}

func TestSanitizeHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{
			name:    "clean passthrough",
			headers: []string{"Name", "Age"},
			want:    []string{"Name", "Age"},
		},
		{
			name:    "blank becomes placeholder",
			headers: []string{"Name", "", "Age"},
			want:    []string{"Name", "Column_2", "Age"},
		},
		{
			name:    "special characters stripped",
			headers: []string{"Price ($)", "Rate (%)"},
			want:    []string{"Price", "Rate"},
		},
		{
			name:    "whitespace collapses to underscore",
			headers: []string{"First  Name", "Last Name"},
			want:    []string{"First_Name", "Last_Name"},
		},
		{
			name:    "duplicates suffixed",
			headers: []string{"Value", "Value", "Value"},
			want:    []string{"Value", "Value_1", "Value_2"},
		},
		{
			name:    "only invalid characters",
			headers: []string{"###"},
			want:    []string{"Column_1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeHeaders(tt.headers); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeHeaders(%v) = %v, want %v", tt.headers, got, tt.want)
			}
		})
	}
}

func TestSyntheticHeaders(t *testing.T) {
	want := []string{"Column_1", "Column_2", "Column_3", "Column_4"}
	if got := SyntheticHeaders(4); !reflect.DeepEqual(got, want) {
		t.Errorf("SyntheticHeaders(4) = %v, want %v", got, want)
	}
	if got := SyntheticHeaders(0); len(got) != 0 {
		t.Errorf("SyntheticHeaders(0) = %v, want empty", got)
	}
}
