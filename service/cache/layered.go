package cache

import (
	"github.com/x-xyz/gomarket/base/ctx"
)

type layered struct {
	layers []Service
}

// NewLayered reads layers in order and backfills the layers that missed
func NewLayered(layers ...Service) Service {
	return &layered{layers}
}

func (im *layered) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	return getByFunc(c, im, key, container, getter)
}

func (im *layered) Get(c ctx.Ctx, key string, container interface{}) error {
	hitIdx := -1
	for idx, lyr := range im.layers {
		err := lyr.Get(c, key, container)
		if err == ErrNotFound {
			continue
		} else if err != nil {
			return err
		}
		hitIdx = idx
		break
	}
	if hitIdx == -1 {
		return ErrNotFound
	}

	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, container); err != nil {
			return err
		}
	}
	return nil
}

func (im *layered) Set(c ctx.Ctx, key string, value interface{}) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (im *layered) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
