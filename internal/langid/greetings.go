package langid

var greetings = map[string]string{
	"en": "Hello! Welcome to TalentScout. I'm here to help you with your initial screening interview.",
	"es": "¡Hola! Bienvenido a TalentScout. Estoy aquí para ayudarte con tu entrevista de preselección inicial.",
	"fr": "Bonjour ! Bienvenue chez TalentScout. Je suis ici pour vous aider avec votre entretien de présélection initial.",
	"de": "Hallo! Willkommen bei TalentScout. Ich bin hier, um Ihnen bei Ihrem ersten Vorstellungsgespräch zu helfen.",
	"it": "Ciao! Benvenuto in TalentScout. Sono qui per aiutarti con la tua intervista di preselezione iniziale.",
	"pt": "Olá! Bem-vindo ao TalentScout. Estou aqui para ajudá-lo com sua entrevista de triagem inicial.",
	"ru": "Привет! Добро пожаловать в TalentScout. Я здесь, чтобы помочь вам с первоначальным собеседованием.",
	"zh": "你好！欢迎来到TalentScout。我在这里帮助您进行初步筛选面试。",
	"ja": "こんにちは！TalentScoutへようこそ。初回面接のお手伝いをさせていただきます。",
	"ko": "안녕하세요! TalentScout에 오신 것을 환영합니다. 초기 선별 면접을 도와드리겠습니다.",
	"hi": "नमस्ते! TalentScout में आपका स्वागत है। मैं आपकी प्रारंभिक स्क्रीनिंग साक्षात्कार में मदद करने के लिए यहां हूं।",
	"bn": "নমস্কার! TalentScout-এ স্বাগতম। আমি আপনার প্রাথমিক স্ক্রিনিং ইন্টারভিউতে সাহায্য করার জন্য এখানে আছি।",
	"ta": "வணக்கம்! TalentScout-க்கு வரவேற்கிறோம். நான் உங்கள் ஆரம்ப தேர்வு நேர்காணலில் உதவ இங்கே இருக்கிறேன்.",
	"te": "నమస్కారం! TalentScout కి స్వాగతం. నేను మీ ప్రారంభ స్క్రీనింగ్ ఇంటర్వ్యూలో సహాయం చేయడానికి ఇక్కడ ఉన్నాను.",
	"mr": "नमस्कार! TalentScout मध्ये आपले स्वागत आहे. मी तुमच्या प्रारंभिक स्क्रीनिंग मुलाखतीत मदत करण्यासाठी येथे आहे.",
	"gu": "નમસ્તે! TalentScout માં આપનું સ્વાગત છે. હું તમારા પ્રારંભિક સ્ક્રીનિંગ ઇન્ટરવ્યૂમાં મદદ કરવા માટે અહીં છું.",
	"kn": "ನಮಸ್ಕಾರ! TalentScout ಗೆ ಸುಸ್ವಾಗತ. ನಾನು ನಿಮ್ಮ ಆರಂಭಿಕ ಸ್ಕ್ರೀನಿಂಗ್ ಸಂದರ್ಶನದಲ್ಲಿ ಸಹಾಯ ಮಾಡಲು ಇಲ್ಲಿ ಇದ್ದೇನೆ.",
	"ml": "നമസ്കാരം! TalentScout-ലേക്ക് സ്വാഗതം. നിങ്ങളുടെ പ്രാരംഭ സ്ക്രീനിംഗ് ഇന്റർവ്യൂവിൽ സഹായിക്കാൻ ഞാൻ ഇവിടെയുണ്ട്.",
	"pa": "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! TalentScout ਵਿੱਚ ਤੁਹਾਡਾ ਸਵਾਗਤ ਹੈ। ਮੈਂ ਤੁਹਾਡੀ ਸ਼ੁਰੂਆਤੀ ਸਕ੍ਰੀਨਿੰਗ ਇੰਟਰਵਿਊ ਵਿੱਚ ਮਦਦ ਕਰਨ ਲਈ ਇੱਥੇ ਹਾਂ।",
	"ur": "السلام علیکم! TalentScout میں آپ کا خیر مقدم ہے۔ میں آپ کی ابتدائی اسکریننگ انٹرویو میں مدد کرنے کے لیے یہاں ہوں۔",
	"ar": "مرحبا! أهلا وسهلا بك في TalentScout. أنا هنا لمساعدتك في مقابلة الفحص الأولي.",
}
