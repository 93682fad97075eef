package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedkit/halgen/internal/cparse"
)

func halClassification(peripheral string) FileClassification {
	return FileClassification{
		Version:    "stm32f4xx",
		Kind:       KindHAL,
		Peripheral: peripheral,
		Stem:       "stm32f4xx_hal_" + peripheral,
	}
}

func llClassification(peripheral string) FileClassification {
	return FileClassification{
		Version:    "stm32f4xx",
		Kind:       KindLL,
		Peripheral: peripheral,
		Stem:       "stm32f4xx_ll_" + peripheral,
	}
}

func TestResolveHandleTypes_HAL(t *testing.T) {
	t.Parallel()

	unit := &cparse.SourceUnit{
		Structs: []cparse.StructDecl{
			{Name: "UART_InitTypeDef"},          // wrong suffix
			{Name: "UART_HandleTypeDef"},        // match
			{Name: "const_UART_HandleTypeDef"},  // const-tainted
			{Name: "SPI_HandleTypeDef"},         // different peripheral
			{Name: "UART_HandleTypeDef"},        // duplicate
		},
	}

	handles := ResolveHandleTypes(halClassification("uart"), unit)

	assert.Equal(t, []string{"UART_HandleTypeDef *"}, handles)
}

func TestResolveHandleTypes_HAL_NoMatch(t *testing.T) {
	t.Parallel()

	unit := &cparse.SourceUnit{
		Structs: []cparse.StructDecl{{Name: "RCC_OscInitTypeDef"}},
	}

	handles := ResolveHandleTypes(halClassification("rcc"), unit)

	// Empty is valid: the emitter falls back to a static namespace.
	assert.Empty(t, handles)
}

func TestResolveHandleTypes_LL(t *testing.T) {
	t.Parallel()

	unit := &cparse.SourceUnit{
		Functions: []cparse.FunctionDecl{
			{
				Name:      "LL_SPI_Enable",
				Arguments: []cparse.Argument{{Name: "SPIx", TypeText: "SPI_TypeDef *"}},
			},
			{
				Name:      "LL_SPI_Disable",
				Arguments: []cparse.Argument{{Name: "SPIx", TypeText: "SPI_TypeDef *"}},
			},
			{
				// const-qualified register blocks are read-only views, not handles.
				Name:      "LL_SPI_ReadReg",
				Arguments: []cparse.Argument{{Name: "SPIx", TypeText: "const SPI_TypeDef *"}},
			},
			{
				// Different peripheral sharing the file's prefix.
				Name:      "LL_I2S_Enable",
				Arguments: []cparse.Argument{{Name: "SPIx", TypeText: "I2S_TypeDef *"}},
			},
			{
				Name:      "LL_SPI_GetVersion",
				Arguments: nil, // no first argument to infer from
			},
		},
	}

	handles := ResolveHandleTypes(llClassification("spi"), unit)

	assert.Equal(t, []string{"SPI_TypeDef *"}, handles)
}

func TestResolveHandleTypes_Idempotent(t *testing.T) {
	t.Parallel()

	unit := &cparse.SourceUnit{
		Structs: []cparse.StructDecl{
			{Name: "UART_HandleTypeDef"},
			{Name: "UART_DMA_HandleTypeDef"},
		},
	}
	c := halClassification("uart")

	first := ResolveHandleTypes(c, unit)
	second := ResolveHandleTypes(c, unit)

	require.Equal(t, first, second)
	assert.Equal(t, []string{"UART_HandleTypeDef *", "UART_DMA_HandleTypeDef *"}, first)
}
