package renderer

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff7aa2", Color{R: 0xff, G: 0x7a, B: 0xa2, A: 0xff}, false},
		{"#00000080", Color{A: 0x80}, false},
		{"ffffff", Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#fff", Color{}, true},
		{"#gggggg", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAssetValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"画板尺寸为 0", "artboard:\n  width: 0\n  height: 10\n"},
		{"属性缺少名称", "artboard: {width: 1, height: 1}\nviewModel:\n  properties:\n    - type: number\n"},
		{"不支持的类型", "artboard: {width: 1, height: 1}\nviewModel:\n  properties:\n    - name: a\n      type: string\n"},
		{"重复属性", "artboard: {width: 1, height: 1}\nviewModel:\n  properties:\n    - name: a\n    - name: a\n"},
		{"颜色错误", "artboard: {width: 1, height: 1}\ncharacter:\n  faceColor: \"#12\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAsset([]byte(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
