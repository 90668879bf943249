package exports

import (
	"fmt"
	"strings"

	"github.com/reusee/pulser/flags"
	"github.com/reusee/pulser/programs"
)

// ClockMHz is the core clock written into vendor-API listings.
const ClockMHz = 500.0

// spinAPIOpcode maps an opcode to its spinapi constant.
// Opcodes without a pb_inst_pbonly constant fall back to CONTINUE.
func spinAPIOpcode(op programs.Opcode) string {
	switch op {
	case programs.OpContinue:
		return "pb.CONTINUE"
	case programs.OpStop:
		return "pb.STOP"
	case programs.OpLoop:
		return "pb.LOOP"
	case programs.OpEndLoop:
		return "pb.END_LOOP"
	case programs.OpJSR:
		return "pb.JSR"
	case programs.OpRTS:
		return "pb.RTS"
	case programs.OpBranch:
		return "pb.BRANCH"
	case programs.OpLongDelay:
		return "pb.LONG_DELAY"
	case programs.OpWait:
		return "pb.WAIT"
	case programs.OpRTI, programs.OpUnknown:
	}
	return "pb.CONTINUE"
}

// SpinAPI renders the program against the vendor python API.
func SpinAPI(program programs.Program) string {
	b := new(strings.Builder)
	fmt.Fprintf(b, `# Generated SpinAPI Python program
# Program: %s
# Total Instructions: %d

import spinapi as pb
import time

# Initialize PulseBlaster
board_num = 0  # Board number (usually 0)
clock_freq = %.1f  # Clock frequency in MHz

try:
    # Initialize the board
    if pb.pb_init() != 0:
        raise Exception("Failed to initialize PulseBlaster board")

    # Set clock frequency
    pb.pb_core_clock(clock_freq)

    # Program the pulse sequence
    pb.pb_start_programming(pb.PULSE_PROGRAM)

    # Add instructions
`, programName(program), len(program.Instructions), ClockMHz)

	for _, inst := range program.Instructions {
		fmt.Fprintf(b, "    pb.pb_inst_pbonly(%s, %s, %d, %s * pb.ns)\n",
			flags.FormatHex(inst.Flags.Bitmask()),
			spinAPIOpcode(inst.Op()),
			inst.Data,
			formatNumber(nanoseconds(inst)),
		)
	}

	b.WriteString(`
    # Stop programming
    pb.pb_stop_programming()

    # Start the pulse program
    pb.pb_start()

    print("Pulse program started successfully")
    print("Press Ctrl+C to stop the program...")

    # Wait for user interrupt or run for specific time
    try:
        while True:
            time.sleep(1)
            status = pb.pb_read_status()
            print(status)
    except KeyboardInterrupt:
        print("\nStopping pulse program...")
        pb.pb_stop()

except Exception as e:
    print(f"Error: {e}")

finally:
    # Clean up
    pb.pb_close()
    print("PulseBlaster closed")
`)
	return b.String()
}
