package token

import (
	"encoding/binary"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"golang.org/x/crypto/sha3"

	"github.com/axiomesh/axiom-token/internal/contract/common"
)

const (
	mintEvent      = "mint"
	burnEvent      = "burn"
	freezeEvent    = "freeze"
	unfreezeEvent  = "unfreeze"
	setFrozenEvent = "set_frozen"
	setAdminEvent  = "set_admin"
	approveEvent   = "approve"
	transferEvent  = "transfer"
)

var event2Sig = map[string]string{
	mintEvent:      "Mint(address,uint256)",
	burnEvent:      "Burn(address,uint256)",
	freezeEvent:    "Freeze(address)",
	unfreezeEvent:  "Unfreeze(address)",
	setFrozenEvent: "SetFrozen(bool)",
	setAdminEvent:  "SetAdmin(address)",
	approveEvent:   "Approval(address,address,uint256,uint64)",
	transferEvent:  "Transfer(address,address,uint256)",
}

type byter interface {
	Bytes() []byte
}

type boolValue bool

func (b boolValue) Bytes() []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

type seqValue uint64

func (s seqValue) Bytes() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(s))
	return buf
}

// recordLog appends one event to the operation's log set. The first topic is
// the keccak256 of the event signature, the rest are the indexed values; the
// payload is packed as left-padded 32-byte words.
func (t *Token) recordLog(event string, topics []byter, data []byter) {
	sigHash := sha3.NewLegacyKeccak256()
	sigHash.Write([]byte(event2Sig[event]))

	currentLog := common.Log{
		Address: t.account.GetAddress(),
	}
	currentLog.Topics = append(currentLog.Topics, ethcommon.BytesToHash(sigHash.Sum(nil)))
	currentLog.Topics = append(currentLog.Topics, lo.Map(topics, func(topic byter, _ int) ethcommon.Hash {
		return ethcommon.BytesToHash(topic.Bytes())
	})...)
	for _, d := range data {
		currentLog.Data = append(currentLog.Data, ethcommon.LeftPadBytes(d.Bytes(), 32)...)
	}

	*t.ctx.CurrentLogs = append(*t.ctx.CurrentLogs, currentLog)
}
