package main

import "congeadmin/internal/app/server"

func main() {
	server.Run()
}
