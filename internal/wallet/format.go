package wallet

// DefaultVisibleChars is how many characters FormatAddress keeps on each side by default.
const DefaultVisibleChars = 4

// FormatAddress shortens an address to "<first n>...<last n>".
// An empty address yields "". Addresses too short to shorten are returned as is.
func FormatAddress(address string, visibleChars int) string {
	if address == "" {
		return ""
	}
	if visibleChars <= 0 {
		visibleChars = DefaultVisibleChars
	}
	if len(address) <= 2*visibleChars {
		return address
	}
	return address[:visibleChars] + "..." + address[len(address)-visibleChars:]
}
