package services

// User-facing messages, Turkish.
const (
	MsgServerError   = "Sunucu hatası"
	MsgUnauthorized  = "Yetkisiz erişim"
	MsgInvalidInput  = "Geçersiz veri"
	MsgUserNotFound  = "Kullanıcı bulunamadı"
	MsgAccountOff    = "Hesap devre dışı"
	MsgBadLogin      = "Geçersiz e-posta veya şifre"
	MsgLoginRequired = "E-posta ve şifre gereklidir"
	MsgEmailTaken    = "Bu e-posta adresi zaten kullanımda"
	MsgSignupOK      = "Hesap başarıyla oluşturuldu"
	MsgLoginOK       = "Giriş başarılı"
	MsgLogoutOK      = "Başarıyla çıkış yapıldı"

	MsgUnknownTag        = "Geçersiz niyet etiketi"
	MsgProfileLinkTaken  = "Bu profil linki zaten kullanımda"
	MsgProfileUpdated    = "Profil başarıyla güncellendi"
	MsgPasswordChanged   = "Şifre başarıyla değiştirildi"
	MsgWrongPassword     = "Mevcut şifre yanlış"
	MsgSamePassword      = "Yeni şifre mevcut şifre ile aynı olamaz"
	MsgPasswordTooLong   = "Şifre en fazla 72 bayt olabilir"
	MsgAvatarUpdated     = "Profil fotoğrafı güncellendi"
	MsgAvatarUnavailable = "Profil fotoğrafı yükleme şu anda kullanılamıyor"
	MsgAvatarType        = "Sadece jpg, jpeg, png veya webp dosyaları yüklenebilir"
	MsgAvatarSize        = "Dosya boyutu 5MB'ı geçemez"

	MsgSelfConnection      = "Kendinize bağlantı isteği gönderemezsiniz"
	MsgAlreadyConnected    = "Bu kullanıcıyla zaten bağlantınız var"
	MsgRequestPending      = "Bekleyen bir bağlantı isteği zaten var"
	MsgConnectionBlocked   = "Bu kullanıcıyla bağlantı kurulamaz"
	MsgConnectionNotFound  = "Bağlantı bulunamadı"
	MsgRequestNotFound     = "Bağlantı isteği bulunamadı"
	MsgRequestSent         = "Bağlantı isteği gönderildi"
	MsgRequestAccepted     = "Bağlantı isteği kabul edildi"
	MsgRequestDeclined     = "Bağlantı isteği reddedildi"
	MsgConnectionBlockedOK = "Kullanıcı engellendi"
	MsgInvalidResponse     = "Geçersiz yanıt"
	MsgInfoShared          = "İletişim bilgileriniz paylaşıldı"
	MsgNotConnected        = "Bu kullanıcıyla kabul edilmiş bir bağlantınız yok"

	MsgMessageRequired = "Mesaj içeriği gereklidir"
	MsgMessageTooLong  = "Mesaj en fazla 2000 karakter olabilir"

	MsgNotificationsUpdated  = "Bildirimler güncellendi"
	MsgNotificationNotFound  = "Bildirim bulunamadı"
	MsgNotificationDeleted   = "Bildirim silindi"
	MsgInvalidNotificationOp = "Geçersiz işlem"
)
