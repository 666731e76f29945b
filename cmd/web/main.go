package main

import "artfolio_backend/internal/app"

func main() {
	app.Run()
}
