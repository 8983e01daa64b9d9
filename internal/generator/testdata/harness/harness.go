package harness

import "github.com/cucumber/godog"

func InitializeCart(sc *godog.ScenarioContext) {
	sc.Step(`^a cart with (\d+) items$`, func(count int) error { return nil })
}

func initializeLocal(sc *godog.ScenarioContext) {}

func Helper(name string) {}
