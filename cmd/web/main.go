package main

import "juakali_backend/internal/app"

func main() {
	app.Run()
}
