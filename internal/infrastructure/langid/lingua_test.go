package langid

import "testing"

func TestDetect(t *testing.T) {
	d := New()

	cases := []struct {
		name   string
		sample string
		want   string
	}{
		{"english", "Take two tablets with water after every meal and contact your doctor if symptoms persist.", "en"},
		{"thai", "กรุณาทานยาหลังอาหารวันละสองครั้งและปรึกษาแพทย์หากมีอาการผิดปกติ", "th"},
		{"vietnamese", "Xin hãy uống thuốc sau bữa ăn và tham khảo ý kiến bác sĩ nếu có triệu chứng bất thường.", "vi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Detect(tc.sample)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Detect() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := New()
	sample := "Take the prescribed medication exactly as directed by your physician."

	first, err := d.Detect(sample)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := d.Detect(sample)
		if err != nil || got != first {
			t.Fatalf("detection not deterministic: %q vs %q (err %v)", got, first, err)
		}
	}
}
