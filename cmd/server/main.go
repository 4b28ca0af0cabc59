package main

import (
	"os"

	"flow-chat/frontend/internal/app"
)

// @title        Flow Chat Front-end API
// @version      1.0
// @description  Browser API of the chat front-end: session, conversations, knowledge and audio.
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}
