package types

import (
	"context"

	"github.com/asticode/go-astiav"

	"github.com/xaionaro-go/avkitchen/internal"
	"github.com/xaionaro-go/avkitchen/logger"
)

type DictionaryItem struct {
	Key   string
	Value string
}

type DictionaryItems []DictionaryItem

// Dictionary materializes the items as an astiav.Dictionary; returns nil
// for an empty item list (libav treats a nil dictionary as "no options").
func (items DictionaryItems) Dictionary(ctx context.Context) *astiav.Dictionary {
	if len(items) == 0 {
		return nil
	}
	d := astiav.NewDictionary()
	internal.SetFinalizerFree(ctx, d)
	for _, item := range items {
		if err := d.Set(item.Key, item.Value, 0); err != nil {
			logger.Errorf(ctx, "unable to set option '%s'='%s': %v", item.Key, item.Value, err)
		}
	}
	return d
}
