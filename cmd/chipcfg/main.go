package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chipcfg/pkg/chip"
	"chipcfg/pkg/config"
	"chipcfg/pkg/register"
)

const usage = `usage: chipcfg [flags] <command>

commands:
  pack            pack the state snapshot into 16 register bytes and print them
  decode <hex>    decode 16 register bytes (32 hex digits) into field values
  transfer        pack the state snapshot and send it to the chip
  reset           command the chip back to its default configuration
  ports           list available serial ports

flags:
`

func main() {
	var (
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyUSB0)")
		stateFlag  = flag.String("state", "chip.state", "Field-value snapshot file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked device instead of serial port")
		outFlag    = flag.String("out", "", "Also write packed register bytes to this file")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// The catalog is the source of truth for every bit position; refuse
	// to do anything if it does not cover the register exactly.
	if err := register.Default.Validate(); err != nil {
		log.Fatalf("Invalid register catalog: %v", err)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	switch flag.Arg(0) {
	case "pack":
		data := mustPack(*stateFlag)
		printRegister(data)
		if *outFlag != "" {
			if err := writeRegisterFile(*outFlag, data); err != nil {
				log.Fatalf("Failed to write register file: %v", err)
			}
			fmt.Printf("register bytes written to %s\n", *outFlag)
		}

	case "decode":
		if flag.NArg() != 2 {
			log.Fatalf("decode requires exactly one argument: 32 hex digits")
		}
		raw, err := hex.DecodeString(flag.Arg(1))
		if err != nil || len(raw) != register.Size {
			log.Fatalf("decode argument must be %d bytes of hex", register.Size)
		}
		var data [register.Size]byte
		copy(data[:], raw)
		values := register.Default.Decode(data)
		for _, f := range register.Default {
			fmt.Printf("%-22s %d\n", f.Name, values[f.Name])
		}

	case "transfer":
		data := mustPack(*stateFlag)
		dev := newDevice(cfg, *mockFlag)
		if err := dev.Connect(); err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		defer dev.Close()

		if err := dev.Transfer(data); err != nil {
			log.Fatalf("Transfer failed: %v", err)
		}
		fmt.Println("transfer complete")

	case "reset":
		dev := newDevice(cfg, *mockFlag)
		if err := dev.Connect(); err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		defer dev.Close()

		if err := dev.Reset(); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		fmt.Println("reset complete")

	case "ports":
		ports, err := chip.Ports()
		if err != nil {
			log.Fatalf("Failed to list ports: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p.Name)
		}

	default:
		log.Fatalf("Unknown command %q", flag.Arg(0))
	}
}

func newDevice(cfg *config.Config, mock bool) chip.Device {
	if mock {
		return chip.NewMock(&cfg.Mock)
	}
	return chip.New(cfg.Serial.Port, cfg.Serial.BaudRate, cfg.Transfer.Timeout, cfg.Transfer.ResetTimeout)
}

// mustPack loads the snapshot and packs it strictly; out-of-range values
// in a snapshot are a user error, not something to truncate silently.
func mustPack(stateFile string) [register.Size]byte {
	values, err := config.LoadState(stateFile)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	data, err := register.Default.AssignStrict(values)
	if err != nil {
		log.Fatalf("Failed to pack register: %v", err)
	}
	return data
}

func printRegister(data [register.Size]byte) {
	dec := make([]string, len(data))
	for i, b := range data {
		dec[i] = fmt.Sprintf("%d", b)
	}
	fmt.Printf("bytes: %s\n", strings.Join(dec, ","))
	fmt.Printf("hex:   %s\n", hex.EncodeToString(data[:]))
}

func writeRegisterFile(filename string, data [register.Size]byte) error {
	var sb strings.Builder
	sb.WriteString("128-bit register configuration\n")
	for i, b := range data {
		fmt.Fprintf(&sb, "byte %2d: %3d (0x%02X)\n", i, b, b)
	}
	return os.WriteFile(filename, []byte(sb.String()), 0644)
}
