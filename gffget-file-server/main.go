package main

import (
	"flag"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/genomicsio/gffget/gffget-file-server/file"
)

var (
	port      = flag.Int("port", 8080, "HTTP service port")
	directory = flag.String("directory", "", "directory that contains annotation files")
)

func main() {
	flag.Parse()

	if *directory == "" {
		panic("no directory specified")
	}

	router := gin.Default()
	router.GET("/features/:id", file.NewFeaturesHandler(*directory))
	router.GET("/lines/:id", file.NewLinesHandler(*directory))
	router.Run(fmt.Sprintf(":%d", *port))
}
