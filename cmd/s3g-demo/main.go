package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/makerhost/s3g"
)

func main() {
	s3g.InfoLogFunc = log.Printf
	s3g.DebugLogFunc = log.Printf

	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s DEV\n"+
			" e.g.: %s /dev/ttyACM0\n",
			os.Args[0],
			os.Args[0])
		os.Exit(1)
	}

	sess := s3g.NewSession(&s3g.SerialPort{Dev: os.Args[1]})
	sess.HostProtocolVersion = 100
	if err := sess.Open(); err != nil {
		log.Fatalf("ERR: %s\n", err)
	}
	defer sess.Close()

	log.Printf("connected, firmware %s", sess.Version)
	demoMove(sess.Master)
}

// demoMove homes X/Y/Z, queues a short absolute move, and heats tool 0.
func demoMove(m *s3g.Master) {
	if err := m.EnableAxes(s3g.AxisX | s3g.AxisY | s3g.AxisZ); err != nil {
		log.Fatalf("ERR: %s\n", err)
	}
	if err := m.FindAxesMinimum(s3g.AxisX|s3g.AxisY|s3g.AxisZ, 1500, 0); err != nil {
		log.Fatalf("ERR: %s\n", err)
	}
	if err := m.QueueAbsolutePoint(1000, 2000, 0, 1500); err != nil {
		log.Fatalf("ERR: %s\n", err)
	}

	tool := &s3g.Tool{Master: m, Index: 0}
	if err := tool.SetTemp(200); err != nil {
		log.Fatalf("ERR: %s\n", err)
	}

	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for range tick.C {
		done, err := m.IsFinished()
		if err != nil {
			log.Printf("ERR: %s\n", err)
			continue
		}
		temp, err := tool.ReadTemp()
		if err != nil {
			log.Printf("ERR: %s\n", err)
			continue
		}
		fmt.Printf("finished=%v temp=%dC\n", done, temp)
		if done {
			return
		}
	}
}
