package generator

import (
	"strings"
	"unicode"
)

// MatchesPeripheral reports whether an identifier belongs to the peripheral.
// The identifier is split on underscores and a token matches when it equals
// the peripheral name or the peripheral name plus the vendor "Ex" extension
// suffix, case-insensitively. Token equality rather than substring
// containment keeps sibling peripherals apart: dma does not claim DMA2D
// functions, while uart still claims HAL_UARTEx_* ones.
func MatchesPeripheral(identifier, peripheral string) bool {
	peripheral = strings.ToLower(peripheral)
	for _, token := range strings.Split(identifier, "_") {
		token = strings.ToLower(token)
		if token == peripheral || token == peripheral+"ex" {
			return true
		}
	}
	return false
}

// ToSnakeCase converts an identifier to lower snake case, keeping acronym
// runs together: "EnableIT_RXNE" becomes "enable_it_rxne", "DMAPause"
// becomes "dma_pause".
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return collapseUnderscores(b.String())
}

// ToPascalCase converts an underscore-separated identifier to Pascal case:
// "UART" becomes "Uart", "__USART" becomes "Usart".
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	}) {
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		for _, r := range runes[1:] {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// collapseUnderscores folds runs of underscores introduced by case
// boundaries adjacent to literal underscores in the source identifier.
func collapseUnderscores(s string) string {
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}
