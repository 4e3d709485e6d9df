// Package bertestvector contains BER-TLV test vectors.
package bertestvector

// EMV File Control Information and related responses.
const (
	// ApplicationCryptogram is a single primitive TLV 9F26.
	ApplicationCryptogram = "9F2608 C2C12B098F3DA6E3"

	// FCI is a constructed 6F containing 84 and constructed A5, followed by 9F36.
	FCI = "6F1A 840E315041592E5359532E4444463031 A508 880102 5F2D02656E" + " 9F36020060"

	// FCITruncated is FCI with the last octet of 9F36 missing.
	FCITruncated = "6F1A 840E315041592E5359532E4444463031 A508 880102 5F2D02656E" + " 9F360200"

	// FCIBadNested is FCI where 5F2D lost its first octet, so 2D is parsed as a constructed TLV.
	FCIBadNested = "6F1A 840E315041592E5359532E4444463031 A508 880102 2D02656E" + " 9F36020060"

	// Response contains 6F, a constructed 77 with four primitives, and an empty 20.
	Response = "6F1A 840E315041592E5359532E4444463031 A508 880102 5F2D02656E" +
		" 7729 9F270100 9F36020060 9F2608C2C12B098F3DA6E3 9F1012 0111258013423A02CFEC00000002011400FF" +
		" 2000"
)

// Multi-octet identifiers.
const (
	// Tags contains identifiers of 1 to 8 octets with one-octet contents 00 to 09.
	Tags = "5A0100 5E0101 5F2D0102 5FDF030103 DFDFDF040104 5F2D0105" +
		" DFDFDFDF060106 DFDFDFDFDF070107 DFDFDFDFDFDF080108 DFDFDFDFDFDFDF090109"

	// TagsWithDuplicates is Tags followed by repeated identifiers at several depths.
	TagsWithDuplicates = Tags +
		" DFDFDFDFDFDFDF090111 DFDFDF040106" +
		" 6F1A 840E315041592E5359532E4444463031 A508 880102 5F2D02656E" +
		" 6F1A 840E315041592E5359532E4444463031 A508 880102 5F2D02656F" +
		" 5E0107"
)

// Malformed inputs.
const (
	// Random is 32 random octets.
	Random = "B78F9D69485B90134E653D0C9CAA283700F29EA478D3FEECC2919997C093705B"

	// Indefinite has the indefinite length form.
	Indefinite = "84 80 010000"

	// TooManyLengthOctets has 5 subsequent length octets.
	TooManyLengthOctets = "84 85 0000000001 00"

	// TruncatedIdentifier ends inside a multi-octet identifier.
	TruncatedIdentifier = "9F"
)
