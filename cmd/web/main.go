package main

import "returnit_backend/internal/app"

func main() {
	app.Run()
}
