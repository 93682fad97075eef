package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embeddedkit/halgen/internal/cparse"
)

func declNames(fns []cparse.FunctionDecl) []string {
	names := make([]string, len(fns))
	for i, fn := range fns {
		names[i] = fn.Name
	}
	return names
}

func TestSelectFunctions_FiltersAndReverses(t *testing.T) {
	t.Parallel()

	functions := []cparse.FunctionDecl{
		{Name: "HAL_UART_Init"},
		{Name: "HAL_UART_Transmit"},
		{Name: "HAL_UART_IRQHandler"},    // interrupt hook, never wrapped
		{Name: "HAL_UART_TxCpltCallback"}, // callback hook, never wrapped
		{Name: "LL_USART_Enable"},         // wrong prefix for hal
		{Name: "UART_SetConfig"},          // private helper, no prefix
		{Name: "HAL_UART_DMAPause"},
	}

	selected := SelectFunctions(functions, KindHAL)

	// Reverse declaration order, hooks and foreign prefixes dropped.
	assert.Equal(t,
		[]string{"HAL_UART_DMAPause", "HAL_UART_Transmit", "HAL_UART_Init"},
		declNames(selected))
}

func TestSelectFunctions_LLPrefix(t *testing.T) {
	t.Parallel()

	functions := []cparse.FunctionDecl{
		{Name: "LL_SPI_Enable"},
		{Name: "HAL_SPI_Init"},
		{Name: "LL_SPI_Disable"},
	}

	selected := SelectFunctions(functions, KindLL)

	assert.Equal(t, []string{"LL_SPI_Disable", "LL_SPI_Enable"}, declNames(selected))
}

func TestSelectFunctions_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, SelectFunctions(nil, KindHAL))
}
