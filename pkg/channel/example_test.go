package channel_test

import (
	"fmt"

	"github.com/matzehuels/chanroute/pkg/channel"
)

func ExampleRoute() {
	ch, err := channel.FromNets([]int{1, 1}, []int{0, 0})
	if err != nil {
		panic(err)
	}
	plan := channel.Route(ch)

	fmt.Println("Tracks:", plan.TrackCount())
	w, _ := plan.Wires(1)
	for _, h := range w.Horizontal {
		fmt.Printf(".H %d %d %d\n", h.LeftX, h.Y, h.RightX)
	}
	for _, v := range w.Vertical {
		fmt.Printf(".V %d %d %d\n", v.X, v.BottomY, v.TopY)
	}
	// Output:
	// Tracks: 1
	// .H 0 1 1
	// .V 0 1 2
	// .V 1 1 2
}

func ExampleCheck() {
	ch, _ := channel.FromNets([]int{1, 0, 2}, []int{0, 1, 2})
	rep := channel.Check(channel.Route(ch), ch)
	fmt.Println(rep)
	// Output:
	// ok: 2 nets, 10 wires
}
