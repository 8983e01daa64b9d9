package main

import "github.com/denizgursoy/gherkin-report/internal/app"

func main() {
	app.Execute()
}
