// file: internals/seeds/runner.go
package seeds

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	expModel "univm_backend/internals/features/academico/expediente/model"
	instModel "univm_backend/internals/features/academico/institucion/model"
	userModel "univm_backend/internals/features/users/user/model"
	asModel "univm_backend/internals/features/vm/asistencia/model"
	evModel "univm_backend/internals/features/vm/evento/model"
	perModel "univm_backend/internals/features/vm/periodo/model"
	prModel "univm_backend/internals/features/vm/proyecto/model"
	sesModel "univm_backend/internals/features/vm/sesion/model"
)

// Run migra el esquema y siembra el mínimo operable: la universidad
// singleton, el periodo vigente y un usuario administrador.
func Run(db *gorm.DB) {
	log.Println("🌱 Ejecutando migraciones...")
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&instModel.UniversidadModel{},
		&instModel.FacultadModel{},
		&instModel.EscuelaProfesionalModel{},
		&instModel.SedeModel{},
		&instModel.EpSedeModel{},
		&expModel.ExpedienteAcademicoModel{},
		&perModel.PeriodoAcademicoModel{},
		&prModel.ProyectoModel{},
		&prModel.ProcesoModel{},
		&prModel.ParticipacionModel{},
		&evModel.EventoModel{},
		&sesModel.SesionModel{},
		&sesModel.QrTokenModel{},
		&asModel.AsistenciaModel{},
		&asModel.RegistroHoraModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate falló: %v", err)
	}

	if _, err := instModel.Unica(db); err != nil {
		log.Fatalf("❌ No se pudo sembrar la universidad: %v", err)
	}

	sembrarPeriodoVigente(db)
	sembrarAdmin(db)

	log.Println("✅ Seed completado")
}

func sembrarPeriodoVigente(db *gorm.DB) {
	ahora := time.Now()
	codigo := ahora.Format("2006") + "-I"
	if ahora.Month() >= time.August {
		codigo = ahora.Format("2006") + "-II"
	}

	var n int64
	db.Model(&perModel.PeriodoAcademicoModel{}).
		Where("periodo_codigo = ?", codigo).Count(&n)
	if n > 0 {
		return
	}

	ini := time.Date(ahora.Year(), time.March, 1, 0, 0, 0, 0, time.Local)
	fin := time.Date(ahora.Year(), time.July, 31, 0, 0, 0, 0, time.Local)
	if ahora.Month() >= time.August {
		ini = time.Date(ahora.Year(), time.August, 1, 0, 0, 0, 0, time.Local)
		fin = time.Date(ahora.Year(), time.December, 20, 0, 0, 0, 0, time.Local)
	}
	per := perModel.PeriodoAcademicoModel{
		PeriodoCodigo:      codigo,
		PeriodoFechaInicio: ini,
		PeriodoFechaFin:    fin,
	}
	if err := db.Create(&per).Error; err != nil {
		log.Printf("⚠️  No se pudo sembrar el periodo %s: %v", codigo, err)
		return
	}
	log.Printf("🗓️  Periodo %s sembrado", codigo)
}

func sembrarAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@universidad.edu.pe"
	}

	var n int64
	db.Model(&userModel.UserModel{}).Where("user_email = ?", email).Count(&n)
	if n > 0 {
		return
	}

	pass := os.Getenv("SEED_ADMIN_PASSWORD")
	if pass == "" {
		pass = "cambiar-ahora"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️  No se pudo hashear la clave del admin: %v", err)
		return
	}

	admin := userModel.UserModel{
		UserFirstName: "Admin",
		UserLastName:  "Sistema",
		UserDocNumero: "00000000",
		UserEmail:     email,
		UserPassword:  string(hash),
		UserIsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("⚠️  No se pudo sembrar el admin: %v", err)
		return
	}
	log.Printf("👤 Admin %s sembrado", email)
}
