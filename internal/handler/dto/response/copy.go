package response

import (
	"bodyshop/internal/domain/money"

	"github.com/jinzhu/copier"
)

// copyOption renders money as a two-decimal string on the wire.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: money.Money{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(money.Money).String(), nil
			},
		},
	},
}

func copyInto[T any](src any) (*T, error) {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copyOption); err != nil {
		return nil, err
	}
	return &dst, nil
}

func copyList[S, T any](items []S) ([]T, error) {
	out := make([]T, 0, len(items))
	if err := copier.CopyWithOption(&out, items, copyOption); err != nil {
		return nil, err
	}
	return out, nil
}
