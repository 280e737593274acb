package services

import (
	"fmt"

	"arizabot/internal/models"
)

// User-facing texts, in Uzbek.
const (
	msgWelcome = "Farg'ona viloyati maktabgacha va maktab ta'limi boshqarmasi " +
		"bo'sh (vakant) DMTT direktori lavozimlariga ochiq tanlov e'lon qiladi.\n\n" +
		"Ariza qabul qilish 2025-yil 9-dekabrdan 13-dekabrgacha davom etadi.\n\n" +
		"Iltimos, arizani topshirish uchun quyidagi ma'lumotlarni kiriting."

	msgAskName      = "To'liq ismingizni kiriting:"
	msgNameTooShort = "Iltimos, to'liq ismingizni kiriting (kamida 3 ta harf):"

	msgAskPhone = "Telefon raqamingizni kiriting (masalan: +998 90 123 45 67):"

	msgPhoneInvalid = "❌ Telefon raqam noto'g'ri formatda.\n\n" +
		"Iltimos, quyidagi formatda kiriting:\n" +
		"+998 90 123 45 67\n" +
		"yoki\n" +
		"+998901234567\n\n" +
		"Qaytadan kiriting:"

	msgAskPDF = "✅ Telefon raqam qabul qilindi.\n\n" +
		"Iltimos, PDF hujjatingizni yuklang:"

	msgNotDocument = "❌ Iltimos, faqat PDF fayl yuboring.\n\n" +
		"PDF hujjatingizni yuklang:"

	msgNotText = "❌ Iltimos, PDF fayl yuboring (matn emas)."

	msgNotPDF = "❌ Faqat PDF formatdagi fayllar qabul qilinadi.\n\n" +
		"Iltimos, PDF hujjatingizni yuklang:"

	msgFileTooLarge = "❌ Fayl hajmi juda katta (maksimal 20MB).\n\n" +
		"Iltimos, kichikroq PDF fayl yuklang:"

	msgAccepted = "✅ Arizangiz qabul qilindi. Rahmat!"

	msgFailure = "❌ Xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring.\n\n" +
		"Botni qayta boshlash uchun /start buyrug'ini yuboring."

	msgCancelled = "❌ Ariza bekor qilindi.\n\n" +
		"Qaytadan boshlash uchun /start buyrug'ini yuboring."
)

func adminSummary(app *models.Application) string {
	return fmt.Sprintf(
		"📋 Yangi ariza kelib tushdi:\n\n"+
			"👤 Ism: %s\n"+
			"📱 Telefon: %s\n"+
			"🆔 Username: %s\n"+
			"📅 Sana: %s\n\n"+
			"📄 PDF fayl quyida:",
		app.Name, app.Phone, app.Username, app.SubmittedAt.Format(models.TimeLayout),
	)
}

func adminCaption(app *models.Application) string {
	return "Ariza: " + app.Name
}
