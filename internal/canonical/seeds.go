package canonical

// Defaults is the built-in canonical seed list: the core ChittyOS
// services every deployment knows about without a seed file.
func Defaults() []Seed {
	return []Seed{
		{
			ChittyID:     "CHITTY-CANON-CHITTYID",
			ServiceName:  "chittyid",
			DisplayName:  "ChittyID",
			Description:  "Identity and token authority",
			BaseURL:      "https://id.chitty.cc",
			Category:     "core-infrastructure",
			Capabilities: []string{"identity", "tokens", "did"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYSCHEMA",
			ServiceName:  "chittyschema",
			DisplayName:  "ChittySchema",
			Description:  "Schema validation authority",
			BaseURL:      "https://schema.chitty.cc",
			Category:     "core-infrastructure",
			Capabilities: []string{"schema-validation"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYTRUST",
			ServiceName:  "chittytrust",
			DisplayName:  "ChittyTrust",
			Description:  "Trust scoring authority",
			BaseURL:      "https://trust.chitty.cc",
			Category:     "security-verification",
			Capabilities: []string{"trust-scoring"},
			Dependencies: []string{"chittyid"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYVERIFY",
			ServiceName:  "chittyverify",
			DisplayName:  "ChittyVerify",
			Description:  "Verification and attestation",
			BaseURL:      "https://verify.chitty.cc",
			Category:     "security-verification",
			Capabilities: []string{"verification", "attestation"},
			Dependencies: []string{"chittyid", "chittytrust"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYCHAIN",
			ServiceName:  "chittychain",
			DisplayName:  "ChittyChain",
			Description:  "Evidence anchoring chain",
			BaseURL:      "https://chain.chitty.cc",
			Category:     "blockchain-infrastructure",
			Capabilities: []string{"anchoring", "evidence-chain"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYLEDGER",
			ServiceName:  "chittyledger",
			DisplayName:  "ChittyLedger",
			Description:  "Append-only transaction ledger",
			BaseURL:      "https://ledger.chitty.cc",
			Category:     "blockchain-infrastructure",
			Capabilities: []string{"ledger"},
			Dependencies: []string{"chittychain"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYCOUNSEL",
			ServiceName:  "chittycounsel",
			DisplayName:  "ChittyCounsel",
			Description:  "Legal analysis assistant",
			BaseURL:      "https://counsel.chitty.cc",
			Category:     "ai-intelligence",
			Capabilities: []string{"legal-analysis"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYEVIDENCE",
			ServiceName:  "chittyevidence",
			DisplayName:  "ChittyEvidence",
			Description:  "Document and evidence storage",
			BaseURL:      "https://evidence.chitty.cc",
			Category:     "document-evidence",
			Capabilities: []string{"evidence-storage", "ocr"},
			Dependencies: []string{"chittychain"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYFINANCE",
			ServiceName:  "chittyfinance",
			DisplayName:  "ChittyFinance",
			Description:  "Billing and invoicing",
			BaseURL:      "https://finance.chitty.cc",
			Category:     "business-operations",
			Capabilities: []string{"invoicing", "billing"},
		},
		{
			ChittyID:     "CHITTY-CANON-CHITTYFOUNDATION",
			ServiceName:  "chittyfoundation",
			DisplayName:  "ChittyFoundation",
			Description:  "Foundation governance",
			BaseURL:      "https://foundation.chitty.cc",
			Category:     "foundation-governance",
			Capabilities: []string{"governance"},
		},
	}
}
