package main

import "arizabot/internal/app"

func main() {
	app.Run()
}
