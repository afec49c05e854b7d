package roster

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "header skipped and sorted",
			text: "Name,Email\nZoe,z@x\nadam,a@x\nBen,b@x\n",
			want: []string{"adam", "Ben", "Zoe"},
		},
		{
			name: "plural header case-insensitive",
			text: "NAMES\r\nKim\r\n",
			want: []string{"Kim"},
		},
		{
			name: "no header",
			text: "Kim\nLee",
			want: []string{"Kim", "Lee"},
		},
		{
			name: "header word later in file is kept",
			text: "Kim\nName",
			want: []string{"Kim", "Name"},
		},
		{
			name: "duplicates and blanks dropped",
			text: "Kim\n\n ,x\nKim\n  Lee  \n",
			want: []string{"Kim", "Lee"},
		},
		{
			name: "quoted cells with commas and escaped quotes",
			text: "\"Smith, Jo\",1\n\"Jay \"\"JJ\"\" Doe\"\n",
			want: []string{"Jay \"JJ\" Doe", "Smith, Jo"},
		},
		{
			name: "surrounding quotes on a bare name are stripped",
			text: " \"\"\"Ann\"\"\" \n",
			want: []string{"Ann"},
		},
		{
			name: "byte order mark before header",
			text: "\uFEFFName\nZed\nAmy\n",
			want: []string{"Amy", "Zed"},
		},
		{
			name: "byte order mark before first name",
			text: "\uFEFFKim\nLee\n",
			want: []string{"Kim", "Lee"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	got := ParseCSV("a,\"b\nc\",d\r\n\n,,\ne")
	want := [][]string{{"a", "b\nc", "d"}, {"e"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCSV() = %q, want %q", got, want)
	}
}
