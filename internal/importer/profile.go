package importer

// Profile describes the header layout of a donor sheet. A sheet matches the
// first profile whose columns are all present.
type Profile struct {
	Name      string
	NameCol   string
	AmountCol string
	PhoneCol  string
	MethodCol string
	ProofCol  string // optional
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.AmountCol, p.PhoneCol, p.MethodCol}
}

var profiles = []Profile{
	{
		Name:      "rekap",
		NameCol:   "Nama",
		AmountCol: "Jumlah",
		PhoneCol:  "Nomor Telepon",
		MethodCol: "Metode",
		ProofCol:  "Bukti",
	},
	{
		Name:      "english",
		NameCol:   "Name",
		AmountCol: "Amount",
		PhoneCol:  "Phone",
		MethodCol: "Method",
		ProofCol:  "Proof",
	},
}
