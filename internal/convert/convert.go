// Package convert converts text between Traditional and Simplified Chinese.
package convert

import (
	"fmt"
	"sync"

	"github.com/longbridgeapp/opencc"

	"github.com/nao1215/zhproof/internal/model"
	"github.com/nao1215/zhproof/internal/rewrite"
)

// Converter converts one text run.
type Converter interface {
	Convert(text string) (string, error)
}

// Func adapts a function to the Converter interface.
type Func func(text string) (string, error)

// Convert calls f.
func (f Func) Convert(text string) (string, error) {
	return f(text)
}

// OpenCC converts with the OpenCC dictionaries. It is safe for concurrent
// use.
type OpenCC struct {
	mu  sync.Mutex
	cc  *opencc.OpenCC
	dir model.Direction
}

// NewOpenCC loads the dictionaries for dir.
func NewOpenCC(dir model.Direction) (*OpenCC, error) {
	cc, err := opencc.New(string(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s dictionaries: %w", dir, err)
	}
	return &OpenCC{cc: cc, dir: dir}, nil
}

// Direction returns the conversion direction.
func (o *OpenCC) Direction() model.Direction {
	return o.dir
}

// Convert converts text. Text without Chinese characters is returned as is
// without consulting the dictionaries.
func (o *OpenCC) Convert(text string) (string, error) {
	if !rewrite.ContainsCJK(text) {
		return text, nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	out, err := o.cc.Convert(text)
	if err != nil {
		return text, fmt.Errorf("failed to convert %s: %w", o.dir, err)
	}
	return out, nil
}
