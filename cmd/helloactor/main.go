// Command helloactor is the minimal end-to-end actor demo (spec §8
// scenario 3): a single actor prints "Hello <word>" exactly once, then
// shuts itself down.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/arcway/actorkit/actor"
)

type helloBehavior struct {
	ctx actor.Context
}

func (h *helloBehavior) OnStart(ctx actor.Context) {
	h.ctx = ctx
}

func (h *helloBehavior) say(word string) error {
	fmt.Printf("Hello %s\n", word)
	return nil
}

func (h *helloBehavior) end() error {
	h.ctx.Shutdown()
	return nil
}

func main() {
	hello := actor.Of[*helloBehavior]("Hello")
	if err := hello.Behavior(func(actor.Context) actor.Behavior {
		return &helloBehavior{}
	}); err != nil {
		log.Fatal(err)
	}

	err := actor.Run([]*actor.Actor{hello}, func(start actor.StartContext) {
		word := "world"
		if len(os.Args) > 1 {
			word = os.Args[1]
		}
		if err := start.PostTo(hello, actor.Apply(func(h *helloBehavior) error {
			return h.say(word)
		})); err != nil {
			log.Fatal(err)
		}
		if err := start.PostTo(hello, actor.Apply(func(h *helloBehavior) error {
			return h.end()
		})); err != nil {
			log.Fatal(err)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
}
