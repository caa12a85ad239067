// linkctl is a manual bring-up CLI for one peripheral connection: complete
// the handshake, issue RELOAD/UPDATE_STATE by hand, and watch GUNSHOT/
// VESTSHOT/IMU frames arrive.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fieldtag/peerlink/host/config"
	"github.com/fieldtag/peerlink/host/linktest"
	"github.com/fieldtag/peerlink/host/serial"
	"github.com/fieldtag/peerlink/protocol"
)

var (
	device     = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud       = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	configPath = flag.String("config", "", "Player/device binding file (optional)")
)

func main() {
	flag.Parse()

	fmt.Println("linkctl - peer-link bring-up tool")
	fmt.Println("=================================")

	if *configPath != "" {
		playerCfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded binding for player %d (gun=%s vest=%s hand=%s)\n",
			playerCfg.PlayerID, playerCfg.GunMAC, playerCfg.VestMAC, playerCfg.HandMAC)
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to %s at %d baud...\n", cfg.Device, cfg.Baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open %s: %v\n", cfg.Device, err)
		os.Exit(1)
	}
	defer port.Close()

	h := linktest.New(port)
	h.OnFrame = func(f protocol.Frame) {
		fmt.Printf("<- %c seq=%d payload=%v\n", f.Type, f.Seq, f.Payload[:4])
	}

	fmt.Println("Sending SYN (remaining_bullets=6, 0)...")
	if err := h.Handshake(protocol.EncodeRoleState(6, 0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: handshake failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Handshake complete.")

	go func() {
		for {
			if err := h.PumpOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "link read error: %v\n", err)
				return
			}
		}
	}()

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "reload":
			reply, err := h.SendCommand(protocol.TypeReload, protocol.EncodeRoleState(6, 0))
			printCommandResult(reply, err)

		case "update_state":
			if len(parts) != 3 {
				fmt.Println("usage: update_state <a> <b>")
				continue
			}
			a, errA := strconv.Atoi(parts[1])
			b, errB := strconv.Atoi(parts[2])
			if errA != nil || errB != nil {
				fmt.Println("update_state: arguments must be integers 0-255")
				continue
			}
			reply, err := h.SendCommand(protocol.TypeUpdateState, protocol.EncodeRoleState(uint8(a), uint8(b)))
			printCommandResult(reply, err)

		case "drop_ack":
			h.DropNextEcho()
			fmt.Println("next confirmation echo will be dropped")

		case "corrupt":
			h.CorruptNextFrame()
			fmt.Println("next outbound frame will have a corrupted CRC")

		case "nak":
			if len(parts) != 2 {
				fmt.Println("usage: nak <seq>")
				continue
			}
			seq, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("nak: seq must be an integer")
				continue
			}
			if err := h.SendNAK(uint8(seq)); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", parts[0])
		}
	}
}

func printCommandResult(reply protocol.Frame, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("-> echoed %c seq=%d payload=%v\n", reply.Type, reply.Seq, reply.Payload[:4])
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  reload                    send RELOAD, refilling the magazine")
	fmt.Println("  update_state <a> <b>      send UPDATE_STATE with role-specific bytes")
	fmt.Println("  drop_ack                  drop the next GUNSHOT/VESTSHOT confirmation")
	fmt.Println("  corrupt                   corrupt the CRC of the next outbound frame")
	fmt.Println("  nak <seq>                 emit a bare NAK carrying seq")
	fmt.Println("  help                      show this message")
	fmt.Println("  quit                      exit")
}
