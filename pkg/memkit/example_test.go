package memkit_test

import (
	"fmt"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/pkg/memkit"
)

func ExampleNew() {
	s, err := memkit.New()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer s.Close()

	err = s.Router().Scoped(alloc.LayoutOf[[16]uint64](), func(b *alloc.Block) error {
		b.Bytes()[0] = 42
		fmt.Println(b.Len(), b.Bytes()[0])
		return nil
	})
	fmt.Println(err)
	// Output:
	// 128 42
	// <nil>
}
