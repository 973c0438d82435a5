package domain

// Advice texts shown alongside a prediction, keyed by risk level.
// Static content, carried verbatim from the health team's copy.

const adviceHigh = `PERHATIAN: Hasil prediksi menunjukkan risiko tinggi diabetes. Segera lakukan tindakan berikut:

1. Konsultasikan dengan dokter untuk pemeriksaan lebih lanjut
2. Periksa kadar gula darah secara rutin
3. Kurangi konsumsi makanan tinggi gula dan karbohidrat
4. Tingkatkan aktivitas fisik minimal 30 menit per hari
5. Jaga berat badan ideal
6. Kelola stress dengan baik
7. Cukup tidur 7-8 jam per hari

PENTING: Segera hubungi tenaga medis profesional untuk diagnosis dan penanganan yang tepat.`

const adviceLow = `BAGUS: Hasil prediksi menunjukkan risiko rendah diabetes. Namun tetap jaga kesehatan Anda dengan:

1. Menjaga pola makan sehat dan seimbang
2. Rutin berolahraga minimal 30 menit per hari
3. Cek kesehatan secara berkala
4. Hindari konsumsi gula berlebihan
5. Pertahankan berat badan ideal

Tetap lakukan medical check-up rutin minimal 1 tahun sekali.`

// Disclaimer accompanies every prediction response.
const Disclaimer = "Hasil prediksi ini bersifat estimasi dan TIDAK menggantikan diagnosis medis profesional. Selalu konsultasikan dengan dokter untuk diagnosis dan penanganan yang tepat."

// AdviceFor returns the guidance text for a positive (1) or negative (0)
// classifier label.
func AdviceFor(label int) string {
	if label == 1 {
		return adviceHigh
	}
	return adviceLow
}
