package wire

import (
	"strings"
	"testing"
)

func TestChooseEncodingQuotedVsLiteral(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{UseQuotedString: true, UseSynchronizingLiteral: true}))

	if enc := b.chooseEncoding("INBOX"); enc != encQuoted {
		t.Errorf("a short printable string should choose quoted encoding, got %v", enc)
	}

	long := strings.Repeat("a", quotedStringMaxLen+1)
	if enc := b.chooseEncoding(long); enc != encClientSyncLiteral {
		t.Errorf("a string over the quoted-string length cap should fall back to a synchronizing literal, got %v", enc)
	}

	if enc := b.chooseEncoding("has \" quote"); enc != encClientSyncLiteral {
		t.Errorf("a string with an unquotable byte should choose a literal even when short, got %v", enc)
	}
}

func TestChooseEncodingLiteralMinusThreshold(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{UseNonSynchronizingLiteralMinus: true}))

	atThreshold := strings.Repeat("a", literalMinusMaxLen)
	if enc := b.chooseEncoding(atThreshold); enc != encClientNonSyncMinus {
		t.Errorf("a payload at exactly the 4096-byte LITERAL- threshold should still use LITERAL-, got %v", enc)
	}

	overThreshold := strings.Repeat("a", literalMinusMaxLen+1)
	if enc := b.chooseEncoding(overThreshold); enc == encClientNonSyncMinus {
		t.Error("a payload of 4097 bytes exceeds LITERAL-'s cap and must not use it")
	}
}

func TestChooseEncodingLiteralPlusAboveMinusThreshold(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{
		UseNonSynchronizingLiteralPlus:  true,
		UseNonSynchronizingLiteralMinus: true,
	}))
	over := strings.Repeat("a", literalMinusMaxLen+1)
	if enc := b.chooseEncoding(over); enc != encClientNonSyncPlus {
		t.Errorf("LITERAL+ has no size cap and should carry a payload over LITERAL-'s cap when both are negotiated, got %v", enc)
	}
}

func TestChooseEncodingServerMode(t *testing.T) {
	b := NewEncodeBuffer(ServerMode(ServerOptions{UseQuotedString: true}))
	if enc := b.chooseEncoding("INBOX"); enc != encQuoted {
		t.Errorf("server mode should still prefer quoted for a short printable string, got %v", enc)
	}
	long := strings.Repeat("a", quotedStringMaxLen+1)
	if enc := b.chooseEncoding(long); enc != encServerLiteral {
		t.Errorf("server mode should fall back to a plain server literal, got %v", enc)
	}
}

func TestWriteQuotedStringEscaping(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{}))
	b.WriteQuotedString(`a"b\c`)
	if got, want := string(b.Bytes()), `"a\"b\\c"`; got != want {
		t.Errorf("WriteQuotedString = %q, want %q", got, want)
	}
}

func TestWriteQuotedStringLoggingMode(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{}))
	b.SetLogging(true)
	b.WriteQuotedString("secret body")
	if got, want := string(b.Bytes()), `"∅"`; got != want {
		t.Errorf("logging-mode quoted string = %q, want %q", got, want)
	}
}

func TestWriteNStringNil(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{}))
	b.WriteNString(nil)
	if got, want := string(b.Bytes()), "NIL"; got != want {
		t.Errorf("WriteNString(nil) = %q, want %q", got, want)
	}
}
