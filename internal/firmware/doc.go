// Package firmware loads decrypted application partitions for analysis.
//
// An Image is read once and then treated as read-only for the rest of the
// run. Dumps compressed with xz are accepted as well as raw binaries:
//
//	img, err := firmware.Load("device_app_1.00_decrypted.bin")
//	if err != nil {
//	    return err
//	}
//	if !img.Contains("TUYA") {
//	    // not decrypted
//	}
package firmware
