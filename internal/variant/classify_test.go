package variant

import (
	"errors"
	"reflect"
	"testing"

	"github.com/muurk/haxomatic/internal/firmware"
)

const (
	sdk232 = "TUYA IOT SDK V:2.3.2 BS:40.00_PT:2.2_LAN:3.3_CAD:1.0.4_CD:1.0.0"
	sdk231 = "TUYA IOT SDK V:2.3.1 BS:40.00_PT:2.2_LAN:3.3_CAD:1.0.3_CD:1.0.0"
	sdk002 = "TUYA IOT SDK V:0.0.2 BS:40.00_PT:2.2_LAN:3.3_CAD:1.0.3_CD:1.0.0"
	sdk233 = "TUYA IOT SDK V:2.3.3 BS:40.00_PT:2.2_LAN:3.4_CAD:1.0.5_CD:1.0.0"
)

func image(markers ...string) *firmware.Image {
	var data []byte
	for _, m := range markers {
		data = append(data, 0xEE, 0xEE)
		data = append(data, m...)
	}
	return firmware.NewImage(data)
}

func TestClassify_KnownBuilds(t *testing.T) {
	tests := []struct {
		name        string
		img         *firmware.Image
		wantRule    string
		wantChipset string
		wantKind    Kind
	}{
		{
			name:        "BK7231T SDK 2.0.0",
			img:         image("TUYA IOT SDK V:2.0.0", "AT 8710_2M"),
			wantRule:    "bk7231t-sdk-2.0.0",
			wantChipset: "BK7231T",
			wantKind:    KindDatagram,
		},
		{
			name:        "BK7231T SDK 1.0.x",
			img:         image("TUYA IOT SDK V:1.0.7", "AT bk7231t"),
			wantRule:    "bk7231t-sdk-1.0.x",
			wantChipset: "BK7231T",
			wantKind:    KindDatagram,
		},
		{
			name:        "BK7231N SDK 2.3.1",
			img:         image(sdk231),
			wantRule:    "bk7231n-sdk-2.3.1",
			wantChipset: "BK7231N",
			wantKind:    KindSSID,
		},
		{
			name:        "BK7231N SDK 0.0.2 alternative marker",
			img:         image(sdk002),
			wantRule:    "bk7231n-sdk-2.3.1",
			wantChipset: "BK7231N",
			wantKind:    KindSSID,
		},
		{
			name:        "BK7231N SDK 2.3.3",
			img:         image(sdk233),
			wantRule:    "bk7231n-sdk-2.3.3",
			wantChipset: "BK7231N",
			wantKind:    KindSSID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Classify(tt.img)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if d.Rule != tt.wantRule {
				t.Errorf("rule = %s, want %s", d.Rule, tt.wantRule)
			}
			if d.Chipset != tt.wantChipset {
				t.Errorf("chipset = %s, want %s", d.Chipset, tt.wantChipset)
			}
			if d.PayloadKind() != tt.wantKind {
				t.Errorf("payload kind = %s, want %s", d.PayloadKind(), tt.wantKind)
			}
		})
	}
}

func TestClassify_NotDecrypted(t *testing.T) {
	_, err := Classify(firmware.NewImage([]byte{0x12, 0x34, 0x56}))

	var nd *NotDecryptedError
	if !errors.As(err, &nd) {
		t.Fatalf("expected NotDecryptedError, got %v", err)
	}
	if nd.Marker != "TUYA" {
		t.Errorf("marker = %q", nd.Marker)
	}
}

func TestClassify_UnknownVariant(t *testing.T) {
	_, err := Classify(image("TUYA but nothing else"))

	var uv *UnknownVariantError
	if !errors.As(err, &uv) {
		t.Fatalf("expected UnknownVariantError, got %v", err)
	}
	if uv.RulesChecked != 5 {
		t.Errorf("RulesChecked = %d, want 5", uv.RulesChecked)
	}
}

func TestClassify_UnsupportedVariant(t *testing.T) {
	_, err := Classify(image(sdk232))

	var us *UnsupportedVariantError
	if !errors.As(err, &us) {
		t.Fatalf("expected UnsupportedVariantError, got %v", err)
	}
	if us.Rule != "bk7231t-sdk-2.3.2" {
		t.Errorf("rule = %s", us.Rule)
	}

	var uv *UnknownVariantError
	if errors.As(err, &uv) {
		t.Error("unsupported build must not be reported as unknown")
	}
}

func TestClassify_UnsupportedRuleBlocksLaterMatch(t *testing.T) {
	// The 2.3.2 dead end is listed before the BK7231N rules, so an image
	// carrying both markers must stop there.
	_, err := Classify(image(sdk232, sdk231))

	var us *UnsupportedVariantError
	if !errors.As(err, &us) {
		t.Fatalf("expected UnsupportedVariantError, got %v", err)
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Both BK7231T rules match; the first listed wins.
	img := image("TUYA IOT SDK V:2.0.0", "AT 8710_2M", "TUYA IOT SDK V:1.0.2", "AT bk7231t")

	d, err := Classify(img)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if d.PatternVersion != 1 {
		t.Errorf("pattern version = %d, want 1", d.PatternVersion)
	}
}

func TestClassify_CustomCatalogOrder(t *testing.T) {
	data := []byte(`
required_marker: "FAM"
rules:
  - name: specific
    markers: [["FAM SDK 1.2.3"]]
    variant:
      chipset: SPECIFIC
      finish: {pattern: "aa", count: 1, index: 0}
  - name: generic
    markers: [["FAM SDK 1."]]
    variant:
      chipset: GENERIC
      finish: {pattern: "aa", count: 1, index: 0}
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	d, err := c.Classify(image("FAM SDK 1.2.3"))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if d.Chipset != "SPECIFIC" {
		t.Errorf("chipset = %s, want SPECIFIC", d.Chipset)
	}

	d, err = c.Classify(image("FAM SDK 1.9"))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if d.Chipset != "GENERIC" {
		t.Errorf("chipset = %s, want GENERIC", d.Chipset)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	img := image(sdk233)

	first, err := Classify(img)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		d, err := Classify(img)
		if err != nil {
			t.Fatalf("Classify() run %d error = %v", i, err)
		}
		if !reflect.DeepEqual(d, first) {
			t.Errorf("run %d returned a different descriptor", i)
		}
	}

	unknown := image("TUYA")
	_, err1 := Classify(unknown)
	_, err2 := Classify(unknown)
	if err1 == nil || err2 == nil || err1.Error() != err2.Error() {
		t.Errorf("repeated classification errors differ: %v / %v", err1, err2)
	}
}

func TestClassify_ReturnedDescriptorIsACopy(t *testing.T) {
	img := image("TUYA IOT SDK V:2.0.0", "AT 8710_2M")

	d, err := Classify(img)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	d.Chipset = "CHANGED"
	d.Payload.ExpectedCount = 99
	d.Payload.Pattern[0] = 0xFF
	d.Finish.Pattern[0] = 0xFF
	d.Finish.PreferredIndex = 7

	again, err := Classify(img)
	if err != nil {
		t.Fatalf("second Classify() error = %v", err)
	}
	if again.Chipset != "BK7231T" {
		t.Errorf("chipset = %s, want BK7231T", again.Chipset)
	}
	if again.Payload.ExpectedCount != 3 {
		t.Errorf("payload count = %d, want 3", again.Payload.ExpectedCount)
	}
	if again.Payload.PatternHex() != "041e07d1119b211c00" {
		t.Errorf("payload pattern = %s", again.Payload.PatternHex())
	}
	if again.Finish.PatternHex() != "2b68301c9847" {
		t.Errorf("finish pattern = %s", again.Finish.PatternHex())
	}
	if again.Finish.PreferredIndex != 0 {
		t.Errorf("finish index = %d, want 0", again.Finish.PreferredIndex)
	}
}
