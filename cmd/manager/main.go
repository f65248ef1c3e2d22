// Command manager demonstrates dynamic spawning and shutdown cascade
// (spec §8 scenario 4): a Manager actor spawns a Hello child at runtime,
// notifies a Callback actor once the child exists, and shutting the
// Manager down cascades to both the child and the callback.
package main

import (
	"fmt"
	"log"

	"github.com/arcway/actorkit/actor"
)

type helloBehavior struct{}

func (h *helloBehavior) say(word string) error {
	fmt.Printf("Hello %s\n", word)
	return nil
}

type callbackBehavior struct {
	ctx actor.Context
}

func (c *callbackBehavior) helloIsReady(hello *actor.Actor) error {
	return c.ctx.PostTo(hello, actor.Apply(func(h *helloBehavior) error {
		return h.say("hi")
	}))
}

type managerBehavior struct {
	ctx      actor.Context
	callback *actor.Actor
}

func (m *managerBehavior) createHello() error {
	hello := actor.Of[*helloBehavior]("Hello")
	if err := hello.Behavior(func(actor.Context) actor.Behavior {
		return &helloBehavior{}
	}); err != nil {
		return err
	}
	if err := m.ctx.Spawn(hello); err != nil {
		return err
	}
	return m.ctx.PostTo(m.callback, actor.Apply(func(c *callbackBehavior) error {
		return c.helloIsReady(hello)
	}))
}

func (m *managerBehavior) end() error {
	m.ctx.Shutdown()
	return nil
}

func main() {
	callback := actor.Of[*callbackBehavior]("Callback")
	if err := callback.Behavior(func(ctx actor.Context) actor.Behavior {
		return &callbackBehavior{ctx: ctx}
	}); err != nil {
		log.Fatal(err)
	}

	manager := actor.Of[*managerBehavior]("Manager")
	if err := manager.Behavior(func(ctx actor.Context) actor.Behavior {
		return &managerBehavior{ctx: ctx, callback: callback}
	}); err != nil {
		log.Fatal(err)
	}
	// Callback isn't spawned from inside Manager's behavior (it's started
	// directly by Run), so the shutdown cascade Context.Spawn would have
	// installed automatically has to be wired by hand.
	if err := manager.OnSignal(func(hctx actor.HandlerContext, sig actor.Signal) {
		_ = hctx.SignalActor(callback, sig)
	}); err != nil {
		log.Fatal(err)
	}

	err := actor.Run([]*actor.Actor{manager, callback}, func(start actor.StartContext) {
		if err := start.PostTo(manager, actor.Apply(func(m *managerBehavior) error {
			return m.createHello()
		})); err != nil {
			log.Fatal(err)
		}
		if err := start.PostTo(manager, actor.Apply(func(m *managerBehavior) error {
			return m.end()
		})); err != nil {
			log.Fatal(err)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
}
