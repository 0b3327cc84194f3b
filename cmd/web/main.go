package main

import "careerlift_backend/internal/app"

func main() {
	app.Run()
}
