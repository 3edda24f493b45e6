package clipboard

import (
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestParseFileRefs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX paths")
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain absolute path",
			text: "/home/me/Pictures/shot.png",
			want: []string{"/home/me/Pictures/shot.png"},
		},
		{
			name: "quoted path with trailing newline",
			text: "\"/home/me/Pictures/my shot.png\"\n",
			want: []string{"/home/me/Pictures/my shot.png"},
		},
		{
			name: "uri list with comment",
			text: "# copied by file manager\r\nfile:///tmp/a%20b.png\r\nfile:///tmp/c.jpg\r\n",
			want: []string{"/tmp/a b.png", "/tmp/c.jpg"},
		},
		{
			name: "ordinary text",
			text: "hello world",
			want: nil,
		},
		{
			name: "relative path",
			text: "shots/a.png",
			want: nil,
		},
		{
			name: "web url",
			text: "https://example.com/a.png",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFileRefs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFileRefs(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseFileRefs_DriveLetterURI(t *testing.T) {
	got := ParseFileRefs("file:///C:/Users/me/shot.png")
	want := filepath.FromSlash("C:/Users/me/shot.png")
	if len(got) != 1 || got[0] != want {
		t.Errorf("ParseFileRefs() = %#v, want [%q]", got, want)
	}
}

func TestIsSupportedFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/a/shot.png", true},
		{"/a/shot.PNG", true},
		{"/a/shot.jpg", true},
		{"/a/shot.JPEG", true},
		{"/a/shot.bmp", true},
		{"/a/shot.gif", false},
		{"/a/shot.webp", false},
		{"/a/shot", false},
		{"/a/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsSupportedFile(tt.path); got != tt.want {
				t.Errorf("IsSupportedFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSnapshot_Empty(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"zero value", Snapshot{}, true},
		{"image without data", Snapshot{Kind: KindImage}, true},
		{"image with data", Snapshot{Kind: KindImage, Data: []byte{1}}, false},
		{"file ref without paths", Snapshot{Kind: KindFileRef}, true},
		{"file ref with path", Snapshot{Kind: KindFileRef, Paths: []string{"/a.png"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
