// File: cmd/service/main.go
// @title        User Hub API
// @version      1.0
// @description  使用者管理服務的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
package main

import (
	"log"
)

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
