package main

import (
	"github.com/jmphair/order-up-midterm-project/internal/app"
	"github.com/jmphair/order-up-midterm-project/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
