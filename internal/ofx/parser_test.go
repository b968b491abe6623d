package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverduzco/monedero/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250615120000[0:GMT]
<LANGUAGE>SPA
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>MXN
<BANKACCTFROM>
<BANKID>012345678
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601120000[0:GMT]
<DTEND>20250630120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250610120000[0:GMT]
<TRNAMT>-85.50
<FITID>2025061001
<NAME>OXXO POLANCO
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250612120000[0:GMT]
<TRNAMT>3000.00
<FITID>2025061201
<NAME>TRANSFERENCIA SPEI RECIBIDA
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250614120000[0:GMT]
<TRNAMT>-120.00
<FITID>2025061401
<NAME>POS PURCHASE UBER TRIP
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>5000.00
<DTASOF>20250630120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250615120000[0:GMT]
<LANGUAGE>SPA
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>MXN
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601120000[0:GMT]
<DTEND>20250630120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250611120000[0:GMT]
<TRNAMT>-219.00
<FITID>2025061102
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile_BankStatement(t *testing.T) {
	p := NewParser()

	txns, err := p.ParseFile(context.Background(), strings.NewReader(sampleBankOFX), "wallet-1")
	require.NoError(t, err)
	require.Len(t, txns, 3)

	oxxo := txns[0]
	assert.Equal(t, "wallet-1", oxxo.WalletID)
	assert.Equal(t, "OXXO POLANCO", oxxo.Description)
	assert.Equal(t, model.TypeExpense, oxxo.Type)
	assert.InDelta(t, 85.50, oxxo.Amount, 0.001)
	assert.Equal(t, "1234567890", oxxo.Account)
	assert.Equal(t, 2025, oxxo.Date.Year())
	assert.Equal(t, time.June, oxxo.Date.Month())
	assert.NotEmpty(t, oxxo.ID)
	assert.NotEmpty(t, oxxo.Hash)

	// Credits become income with a positive amount.
	spei := txns[1]
	assert.Equal(t, model.TypeIncome, spei.Type)
	assert.InDelta(t, 3000.00, spei.Amount, 0.001)

	// Bank noise prefixes get stripped.
	uber := txns[2]
	assert.Equal(t, "UBER TRIP", uber.Description)
}

func TestParseFile_CreditCardStatement(t *testing.T) {
	p := NewParser()

	txns, err := p.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX), "wallet-1")
	require.NoError(t, err)
	require.Len(t, txns, 1)

	assert.Equal(t, "NETFLIX.COM", txns[0].Description)
	assert.Equal(t, model.TypeExpense, txns[0].Type)
	assert.Equal(t, "4111111111111111", txns[0].Account)
}

func TestParseFile_HashesAreStable(t *testing.T) {
	p := NewParser()

	first, err := p.ParseFile(context.Background(), strings.NewReader(sampleBankOFX), "wallet-1")
	require.NoError(t, err)
	second, err := p.ParseFile(context.Background(), strings.NewReader(sampleBankOFX), "wallet-1")
	require.NoError(t, err)

	// IDs are fresh per parse but hashes identify the same underlying rows,
	// so re-importing a statement dedupes at the store.
	require.Len(t, second, len(first))
	for i := range first {
		assert.NotEqual(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Hash, second[i].Hash)
	}
}

func TestParseFile_LeadingWhitespace(t *testing.T) {
	p := NewParser()

	txns, err := p.ParseFile(context.Background(), strings.NewReader("\n\n  "+sampleBankOFX), "wallet-1")
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}

func TestParseFile_InvalidContent(t *testing.T) {
	p := NewParser()

	_, err := p.ParseFile(context.Background(), strings.NewReader("not an ofx file"), "wallet-1")
	assert.Error(t, err)
}

func TestExtractDescription_GenericNameFallsBackToMemo(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected bool
	}{
		{"generic debit", "DEBIT", true},
		{"generic compra", "compra", true},
		{"real merchant", "OXXO POLANCO", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, isGenericDescription(tc.input))
		})
	}
}
