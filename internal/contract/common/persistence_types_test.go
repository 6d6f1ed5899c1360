package common

import (
	"reflect"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/axiomesh/axiom-token/internal/ledger"
)

func newTestAccount() *ledger.StateAccount {
	return ledger.NewStateAccount(ledger.NewMemory(), ethcommon.HexToAddress(TokenContractAddr))
}

func TestVMMap(t *testing.T) {
	type Value struct {
		Name string
		Desc string
	}

	account := newTestAccount()
	vmMap := NewVMMap[string, Value](account, "test", func(key string) string { return key })

	assert.False(t, vmMap.Has("test"))
	exist, v, err := vmMap.Get("test")
	assert.Nil(t, err)
	assert.Empty(t, v)
	assert.False(t, exist)

	_, err = vmMap.MustGet("test")
	assert.NotNil(t, err)

	old := Value{Name: "name", Desc: "desc"}
	err = vmMap.Put("test", old)
	assert.Nil(t, err)

	exist, v, err = vmMap.Get("test")
	assert.Nil(t, err)
	assert.True(t, reflect.DeepEqual(v, old))
	assert.True(t, exist)

	newValue := Value{Name: "new name", Desc: "new desc"}
	err = vmMap.Put("test", newValue)
	assert.Nil(t, err)

	exist, v, err = vmMap.Get("test")
	assert.Nil(t, err)
	assert.True(t, reflect.DeepEqual(v, newValue))
	assert.True(t, exist)
	assert.True(t, vmMap.Has("test"))

	err = vmMap.Put("nil_value", Value{})
	assert.Nil(t, err)
	assert.True(t, vmMap.Has("nil_value"))

	exist, v2, err := vmMap.Get("nil_value")
	assert.Nil(t, err)
	assert.True(t, reflect.DeepEqual(v2, Value{}))
	assert.True(t, exist)

	err = vmMap.Delete("nil_value")
	assert.Nil(t, err)
	assert.False(t, vmMap.Has("nil_value"))
	exist, v2, err = vmMap.Get("nil_value")
	assert.Nil(t, err)
	assert.Empty(t, v2)
	assert.False(t, exist)

	err = vmMap.Put("nil_value", old)
	assert.Nil(t, err)
	assert.True(t, vmMap.Has("nil_value"))
	exist, v2, err = vmMap.Get("nil_value")
	assert.Nil(t, err)
	assert.True(t, reflect.DeepEqual(v2, old))
	assert.True(t, exist)
}

func TestVMSlotStruct(t *testing.T) {
	type Value struct {
		Name string
		Desc string
	}

	account := newTestAccount()
	slot := NewVMSlot[Value](account, "test")

	assert.False(t, slot.Has())
	exist, v, err := slot.Get()
	assert.Nil(t, err)
	assert.Empty(t, v)
	assert.False(t, exist)

	_, err = slot.MustGet()
	assert.NotNil(t, err)

	old := Value{Name: "name", Desc: "desc"}
	err = slot.Put(old)
	assert.Nil(t, err)

	assert.True(t, slot.Has())
	exist, v, err = slot.Get()
	assert.Nil(t, err)
	assert.True(t, reflect.DeepEqual(v, old))
	assert.True(t, exist)

	got, err := slot.MustGet()
	assert.Nil(t, err)
	assert.True(t, reflect.DeepEqual(got, old))

	err = slot.Delete()
	assert.Nil(t, err)
	assert.False(t, slot.Has())
	exist, v, err = slot.Get()
	assert.Nil(t, err)
	assert.Empty(t, v)
	assert.False(t, exist)

	err = slot.Put(old)
	assert.Nil(t, err)
	assert.True(t, slot.Has())
}

func TestVMSlotString(t *testing.T) {
	account := newTestAccount()
	slot := NewVMSlot[string](account, "test")

	assert.False(t, slot.Has())
	exist, v, err := slot.Get()
	assert.Nil(t, err)
	assert.Empty(t, v)
	assert.False(t, exist)

	err = slot.Put("value")
	assert.Nil(t, err)

	assert.True(t, slot.Has())
	exist, v, err = slot.Get()
	assert.Nil(t, err)
	assert.Equal(t, "value", v)
	assert.True(t, exist)

	err = slot.Put("value2")
	assert.Nil(t, err)
	exist, v, err = slot.Get()
	assert.Nil(t, err)
	assert.Equal(t, "value2", v)
	assert.True(t, exist)

	err = slot.Delete()
	assert.Nil(t, err)
	assert.False(t, slot.Has())
}

func TestRequireAuth(t *testing.T) {
	caller := ethcommon.HexToAddress("0x1210000000000000000000000000000000000000")
	other := ethcommon.HexToAddress("0x1220000000000000000000000000000000000000")

	ctx := &VMContext{From: caller}
	assert.Nil(t, ctx.RequireAuth(caller))

	err := ctx.RequireAuth(other)
	assert.NotNil(t, err)
	assert.ErrorIs(t, err, ErrAuthorizationFailed)
}
