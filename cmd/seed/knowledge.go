package main

import (
	"helpdesk-agent/internal/models"

	"github.com/google/uuid"
)

const seedResolver = "Sistema"

// Fixed ids keep the seeder idempotent.
var knowledgeEntries = []*models.KnowledgeEntry{
	{
		ID:         uuid.MustParse("00000000-0000-4000-8000-000000000001"),
		Problem:    "No puedo imprimir, la impresora no responde",
		Solution:   "Sigue estos pasos para solucionar el problema:\n\n1. Verifica que la impresora esté encendida y conectada correctamente\n2. Revisa que haya papel en la bandeja\n3. Ve a 'Configuración' > 'Dispositivos' > 'Impresoras y escáneres'\n4. Haz clic derecho en tu impresora y selecciona 'Establecer como predeterminada'\n5. Si el problema persiste, elimina la impresora y agrégala nuevamente\n6. Reinicia el servicio de cola de impresión: abre 'Servicios', busca 'Cola de impresión' y reinícialo",
		ResolvedBy: seedResolver,
	},
	{
		ID:         uuid.MustParse("00000000-0000-4000-8000-000000000002"),
		Problem:    "Mi computadora está muy lenta",
		Solution:   "Para mejorar el rendimiento de tu computadora:\n\n1. Abre el Administrador de tareas (Ctrl + Shift + Esc)\n2. Revisa qué programas están consumiendo más recursos\n3. Cierra las aplicaciones que no estés usando\n4. Limpia archivos temporales: busca 'Liberador de espacio en disco'\n5. Desactiva programas de inicio innecesarios en 'Configuración' > 'Aplicaciones' > 'Inicio'\n6. Asegúrate de tener al menos 10% de espacio libre en el disco\n7. Considera reiniciar la computadora si lleva varios días encendida",
		ResolvedBy: seedResolver,
	},
	{
		ID:         uuid.MustParse("00000000-0000-4000-8000-000000000003"),
		Problem:    "No tengo conexión a internet",
		Solution:   "Para resolver problemas de conexión a internet:\n\n1. Verifica que el cable de red esté conectado correctamente (si usas cable)\n2. Si usas WiFi, verifica que estés conectado a la red correcta\n3. Reinicia tu router/modem: desconéctalo 30 segundos y vuelve a conectarlo\n4. Ejecuta el solucionador de problemas de red de Windows:\n   - Clic derecho en el ícono de red\n   - Selecciona 'Solucionar problemas'\n5. Reinicia tu computadora\n6. Si el problema persiste, verifica con otros dispositivos si tienen internet",
		ResolvedBy: seedResolver,
	},
	{
		ID:         uuid.MustParse("00000000-0000-4000-8000-000000000004"),
		Problem:    "Olvidé mi contraseña de Windows",
		Solution:   "Para recuperar tu contraseña:\n\n1. Si usas cuenta Microsoft:\n   - Ve a https://account.live.com/password/reset\n   - Sigue las instrucciones para restablecer tu contraseña\n   - Usa tu correo o teléfono de recuperación\n\n2. Si usas cuenta local:\n   - Necesitarás ayuda del administrador del sistema\n   - Contacta al departamento de IT para que restablezcan tu contraseña\n\n3. Prevención futura:\n   - Configura preguntas de seguridad\n   - Vincula un correo de recuperación\n   - Considera usar un gestor de contraseñas",
		ResolvedBy: seedResolver,
	},
	{
		ID:         uuid.MustParse("00000000-0000-4000-8000-000000000005"),
		Problem:    "No puedo abrir un archivo de Excel",
		Solution:   "Para solucionar problemas con archivos de Excel:\n\n1. Verifica que tengas Microsoft Excel instalado\n2. Intenta abrir Excel primero y luego abre el archivo desde 'Archivo' > 'Abrir'\n3. Si el archivo está dañado:\n   - Abre Excel\n   - Ve a 'Archivo' > 'Abrir'\n   - Selecciona el archivo\n   - Haz clic en la flecha junto a 'Abrir'\n   - Selecciona 'Abrir y reparar'\n4. Si el archivo está en formato antiguo (.xls), guárdalo como .xlsx\n5. Verifica que el archivo no esté bloqueado por otro usuario\n6. Asegúrate de tener permisos para acceder al archivo",
		ResolvedBy: seedResolver,
	},
}
