package query

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABI fragments for the contracts the engine talks to. Parsed
// once; a parse failure here is a programming error, hence the panic.

const erc20ABIJSON = `[
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

const pairABIJSON = `[
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"getReserves","outputs":[{"name":"_reserve0","type":"uint112"},{"name":"_reserve1","type":"uint112"},{"name":"_blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"token0","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"token1","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

const multicallABIJSON = `[
{"inputs":[{"name":"requireSuccess","type":"bool"},{"components":[{"name":"target","type":"address"},{"name":"callData","type":"bytes"}],"name":"calls","type":"tuple[]"}],"name":"tryAggregate","outputs":[{"components":[{"name":"success","type":"bool"},{"name":"returnData","type":"bytes"}],"name":"returnData","type":"tuple[]"}],"stateMutability":"view","type":"function"}]`

var (
	parseOnce    sync.Once
	erc20ABI     abi.ABI
	pairABI      abi.ABI
	multicallABI abi.ABI
)

func initABIs() {
	parseOnce.Do(func() {
		var err error
		if erc20ABI, err = abi.JSON(strings.NewReader(erc20ABIJSON)); err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		if pairABI, err = abi.JSON(strings.NewReader(pairABIJSON)); err != nil {
			panic(fmt.Sprintf("failed to parse pair ABI: %v", err))
		}
		if multicallABI, err = abi.JSON(strings.NewReader(multicallABIJSON)); err != nil {
			panic(fmt.Sprintf("failed to parse multicall ABI: %v", err))
		}
	})
}

// ERC20ABI returns the parsed minimal ERC20 interface (symbol, decimals,
// balanceOf, totalSupply).
func ERC20ABI() abi.ABI {
	initABIs()
	return erc20ABI
}

// PairABI returns the parsed Uniswap-V2-style pair interface: the ERC20
// surface plus getReserves, token0 and token1.
func PairABI() abi.ABI {
	initABIs()
	return pairABI
}

func parsedMulticallABI() abi.ABI {
	initABIs()
	return multicallABI
}
