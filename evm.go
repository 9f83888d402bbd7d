package tracehook

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// contractAddress is where Execute installs the code it runs.
var contractAddress = common.BytesToAddress([]byte("contract"))

// chainConfig activates every fork up to Cancun from genesis.
var chainConfig = func() *params.ChainConfig {
	shanghai, cancun := uint64(0), uint64(0)
	return &params.ChainConfig{
		ChainID:                 big.NewInt(1),
		HomesteadBlock:          new(big.Int),
		DAOForkBlock:            new(big.Int),
		EIP150Block:             new(big.Int),
		EIP155Block:             new(big.Int),
		EIP158Block:             new(big.Int),
		ByzantiumBlock:          new(big.Int),
		ConstantinopleBlock:     new(big.Int),
		PetersburgBlock:         new(big.Int),
		IstanbulBlock:           new(big.Int),
		MuirGlacierBlock:        new(big.Int),
		BerlinBlock:             new(big.Int),
		LondonBlock:             new(big.Int),
		TerminalTotalDifficulty: big.NewInt(0),
		ShanghaiTime:            &shanghai,
		CancunTime:              &cancun,
	}
}()

// machine is an in-memory EVM whose state reports to the tracing hooks,
// so that state events such as logs reach the tracer as well as opcodes.
type machine struct {
	evm      *vm.EVM
	hooks    *tracing.Hooks
	gasLimit uint64
}

func newMachine(hooks *tracing.Hooks, gasLimit uint64) (*machine, error) {
	sdb, err := state.New(types.EmptyRootHash, state.NewDatabaseForTesting())
	if err != nil {
		return nil, err
	}

	random := common.Hash{}
	blockCtx := vm.BlockContext{
		CanTransfer: core.CanTransfer,
		Transfer:    core.Transfer,
		GetHash: func(n uint64) common.Hash {
			return common.BytesToHash(crypto.Keccak256([]byte(new(big.Int).SetUint64(n).String())))
		},
		BlockNumber: new(big.Int),
		Difficulty:  new(big.Int),
		GasLimit:    gasLimit,
		BaseFee:     big.NewInt(params.InitialBaseFee),
		BlobBaseFee: big.NewInt(params.BlobTxMinBlobGasprice),
		Random:      &random,
	}
	txCtx := vm.TxContext{GasPrice: new(big.Int)}

	hooked := state.NewHookedState(sdb, hooks)
	evm := vm.NewEVM(blockCtx, txCtx, hooked, chainConfig, vm.Config{Tracer: hooks})
	return &machine{evm: evm, hooks: hooks, gasLimit: gasLimit}, nil
}

func (m *machine) rules() params.Rules {
	ctx := m.evm.Context
	return chainConfig.Rules(ctx.BlockNumber, ctx.Random != nil, ctx.Time)
}

func (m *machine) txStart(to *common.Address, data []byte) {
	if m.hooks.OnTxStart == nil {
		return
	}
	tx := types.NewTx(&types.LegacyTx{To: to, Data: data, Value: new(big.Int), Gas: m.gasLimit})
	m.hooks.OnTxStart(m.evm.GetVMContext(), tx, common.Address{})
}

func (m *machine) txEnd(leftOver uint64, err error) {
	if m.hooks.OnTxEnd != nil {
		m.hooks.OnTxEnd(&types.Receipt{GasUsed: m.gasLimit - leftOver}, err)
	}
}

// call installs code at contractAddress and calls it with input.
func (m *machine) call(code, input []byte) ([]byte, uint64, error) {
	rules := m.rules()
	to := contractAddress
	m.txStart(&to, input)

	db := m.evm.StateDB
	db.Prepare(rules, common.Address{}, common.Address{}, &to, vm.ActivePrecompiles(rules), nil)
	db.CreateAccount(to)
	db.SetCode(to, code)

	ret, leftOver, err := m.evm.Call(vm.AccountRef(common.Address{}), to, input, m.gasLimit, new(uint256.Int))
	m.txEnd(leftOver, err)
	return ret, leftOver, err
}

// create runs initCode as a contract creation.
func (m *machine) create(initCode []byte) ([]byte, common.Address, uint64, error) {
	rules := m.rules()
	m.txStart(nil, initCode)

	m.evm.StateDB.Prepare(rules, common.Address{}, common.Address{}, nil, vm.ActivePrecompiles(rules), nil)

	code, address, leftOver, err := m.evm.Create(vm.AccountRef(common.Address{}), initCode, m.gasLimit, new(uint256.Int))
	m.txEnd(leftOver, err)
	return code, address, leftOver, err
}
