package convert

import (
	"testing"

	"github.com/nao1215/zhproof/internal/model"
)

func TestOpenCC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dir  model.Direction
		in   string
		want string
	}{
		{name: "traditional to simplified", dir: model.TraditionalToSimplified, in: "漢字轉換", want: "汉字转换"},
		{name: "simplified to traditional", dir: model.SimplifiedToTraditional, in: "汉字转换", want: "漢字轉換"},
		{name: "latin passes through", dir: model.TraditionalToSimplified, in: "Hello, world", want: "Hello, world"},
		{name: "empty", dir: model.SimplifiedToTraditional, in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cc, err := NewOpenCC(tt.dir)
			if err != nil {
				t.Fatalf("NewOpenCC() error = %v", err)
			}
			got, err := cc.Convert(tt.in)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var c Converter = Func(func(s string) (string, error) { return s + "!", nil })
	if got, _ := c.Convert("a"); got != "a!" {
		t.Errorf("Convert() = %q, want %q", got, "a!")
	}
}
