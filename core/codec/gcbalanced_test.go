package codec_test

import (
	"testing"

	"github.com/genecoder-go/genecoder/core/codec"
	"github.com/maxatome/go-testdeep/td"
)

func TestGCBalancedTagSelection(t *testing.T) {
	// S3 from the scenario table: 0x00 0x00 -> Base4Direct gives AAAAAAAA
	// (GC=0, homopolymer=8), which fails the default constraints, so the
	// encoder emits T + Base4Direct(0xFF 0xFF) = GGGGGGGG.
	in := []byte{0x00, 0x00}
	res := codec.GCBalancedEncode(in, codec.DefaultGCParams())
	td.Cmp(t, res.Inverted, true)
	td.Cmp(t, res.DNA, []byte("TGGGGGGGG"))

	back, err := codec.GCBalancedDecode(res.DNA)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, back, in)
}

func TestGCBalancedLeadingTag(t *testing.T) {
	for _, in := range [][]byte{{0x00}, {0xFF}, []byte("hello world")} {
		res := codec.GCBalancedEncode(in, codec.DefaultGCParams())
		tag := res.DNA[0]
		if tag != 'A' && tag != 'T' {
			t.Fatalf("leading tag %q is neither A nor T", tag)
		}
	}
}

func TestGCBalancedNotInvertedMatchesBase4Direct(t *testing.T) {
	in := []byte("a reasonably balanced payload 1234")
	res := codec.GCBalancedEncode(in, codec.DefaultGCParams())
	if res.Inverted {
		t.Skip("this input happened to require inversion under default constraints")
	}
	td.Cmp(t, res.DNA[0], byte('A'))
	td.Cmp(t, res.DNA[1:], codec.Base4DirectEncode(in))
}

func TestGCBalancedDecodeInvalidTag(t *testing.T) {
	_, err := codec.GCBalancedDecode([]byte("XAAAA"))
	if err == nil {
		t.Fatal("expected an error for an invalid leading tag")
	}
}

func TestGCBalancedRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xAB, 0xCD, 0xEF},
		[]byte("the quick brown fox"),
	}
	for _, in := range inputs {
		res := codec.GCBalancedEncode(in, codec.DefaultGCParams())
		back, err := codec.GCBalancedDecode(res.DNA)
		if err != nil {
			t.Fatalf("Decode(%v): %v", in, err)
		}
		td.Cmp(t, back, in)
	}
}
