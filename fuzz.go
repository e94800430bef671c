package remnantsav

// Fuzz is a go-fuzz entry point exercising the full decode path: container
// framing, then the nested object/property archive.
func Fuzz(data []byte) int {
	a, err := DecodeSavFile(data, nil)
	if err != nil {
		return 0
	}
	_ = EncodeSavFile(a, a.Header.SaveGameFileVersion)
	return 1
}
