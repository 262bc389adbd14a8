// Package errors is a helper package for the plain Go language error type. We
// think of these errors as curated errors. External to this package, curated
// errors are referenced as plain errors (ie. they implement the error
// interface).
//
// Internally, errors are thought of as being composed of parts, as described
// by The Go Programming Language (Donovan, Kernighan): "When the error is
// ultimately handled by the program's main function, it should provide a clear
// causal chain from the root of the problem to the overal failure".
//
// The Error() function implementation for curated errors ensures that this
// chain is normalised. Specifically, that the chain does not contain duplicate
// adjacent parts. The practical advantage of this is that it alleviates the
// problem of when and how to wrap errors. For example:
//
//	func main() {
//		err := machine.LoadCartridge(path)
//		if err != nil {
//			fmt.Println(err)
//		}
//	}
//
//	func (m *Machine) LoadCartridge(path string) error {
//		err := crt.Load(path)
//		if err != nil {
//			return errors.Errorf("cartridge: %v", err)
//		}
//		return nil
//	}
//
//	func crt.Load(path string) error {
//		err := readHeader(path)
//		if err != nil {
//			return errors.Errorf("cartridge: %v", err)
//		}
//		return nil
//	}
//
//	func readHeader(path string) error {
//		return errors.Errorf("unsupported hardware type (%d)", 99)
//	}
//
// This will result in the main() function printing an error message. Using the
// curated Error() function, the message will be:
//
//	cartridge: unsupported hardware type (99)
//
// and not:
//
//	cartridge: cartridge: unsupported hardware type (99)
//
package errors
