package main

import (
	"log"
	"time"

	"github.com/gounknown/logroll"
)

func main() {
	l, err := logroll.New(
		logroll.WithFile("_logs/app"),
		logroll.WithDateFormat("yyyyMMddHHmmss"),
		logroll.WithFrequency("1000"),
	)
	if err != nil {
		panic(err)
	}
	defer l.Close()

	log.SetOutput(l)

	log.Printf("Hello, World!")
	time.Sleep(time.Second)
	log.Printf("Hello, World!")
}
